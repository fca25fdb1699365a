package spirv

import (
	"fmt"
	"math"
)

// ConstantTable interns OpConstant*/OpConstantTrue/OpConstantFalse
// instructions by (type, bit pattern) so that repeated requests for an
// equal constant return the same result id (the same interning invariant
// as TypeTable).
type ConstantTable struct {
	ctx    *Context
	module *Module
	byKey  map[typeKey]uint32
}

// NewConstantTable creates an empty, interning constant table.
func NewConstantTable(ctx *Context, module *Module) *ConstantTable {
	return &ConstantTable{ctx: ctx, module: module, byKey: make(map[typeKey]uint32)}
}

func (c *ConstantTable) intern(key typeKey, build func(id uint32) Instruction) uint32 {
	if id, ok := c.byKey[key]; ok {
		return id
	}
	id := c.ctx.TakeID()
	c.module.AddType(build(id))
	c.byKey[key] = id
	return id
}

// Bool returns (interning) the id of OpConstantTrue/OpConstantFalse.
func (c *ConstantTable) Bool(typeID uint32, value bool) uint32 {
	key := typeKey(fmt.Sprintf("cbool:%d:%t", typeID, value))
	op := OpConstantFalse
	if value {
		op = OpConstantTrue
	}
	return c.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(typeID)
		ib.AddWord(id)
		return ib.Build(op)
	})
}

// Int32 returns (interning) the id of a 32-bit signed integer constant.
func (c *ConstantTable) Int32(typeID uint32, value int32) uint32 {
	return c.scalarWord(typeID, "cint32", uint32(value))
}

// Uint32 returns (interning) the id of a 32-bit unsigned integer constant.
func (c *ConstantTable) Uint32(typeID uint32, value uint32) uint32 {
	return c.scalarWord(typeID, "cuint32", value)
}

// Float32 returns (interning) the id of a 32-bit float constant.
func (c *ConstantTable) Float32(typeID uint32, value float32) uint32 {
	return c.scalarWord(typeID, "cfloat32", math.Float32bits(value))
}

// Float64 returns (interning) the id of a 64-bit float constant.
func (c *ConstantTable) Float64(typeID uint32, value float64) uint32 {
	bits := math.Float64bits(value)
	key := typeKey(fmt.Sprintf("cfloat64:%d:%d", typeID, bits))
	return c.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(typeID)
		ib.AddWord(id)
		ib.AddWord(uint32(bits & 0xFFFFFFFF))
		ib.AddWord(uint32(bits >> 32))
		return ib.Build(OpConstant)
	})
}

func (c *ConstantTable) scalarWord(typeID uint32, tag string, bits uint32) uint32 {
	key := typeKey(fmt.Sprintf("%s:%d:%d", tag, typeID, bits))
	return c.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(typeID)
		ib.AddWord(id)
		ib.AddWord(bits)
		return ib.Build(OpConstant)
	})
}

// Composite returns (interning) the id of an OpConstantComposite built from
// constituents, in order.
func (c *ConstantTable) Composite(typeID uint32, constituents []uint32) uint32 {
	key := typeKey(fmt.Sprintf("ccomposite:%d:%v", typeID, constituents))
	return c.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(typeID)
		ib.AddWord(id)
		ib.AddWords(constituents...)
		return ib.Build(OpConstantComposite)
	})
}
