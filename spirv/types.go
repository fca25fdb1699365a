package spirv

import "fmt"

// typeKey is the structural identity of an interned SPIR-V type: two
// requests that produce the same key must resolve to the same result id
// instead of allocating a fresh one per call.
type typeKey string

// TypeTable interns OpType* instructions by structural equality so that,
// e.g., every request for "vec3<f32>" returns the same SPIR-V type id.
type TypeTable struct {
	ctx    *Context
	module *Module
	byKey  map[typeKey]uint32
}

// NewTypeTable creates an empty, interning type table.
func NewTypeTable(ctx *Context, module *Module) *TypeTable {
	return &TypeTable{ctx: ctx, module: module, byKey: make(map[typeKey]uint32)}
}

func (t *TypeTable) intern(key typeKey, build func(id uint32) Instruction) uint32 {
	if id, ok := t.byKey[key]; ok {
		return id
	}
	id := t.ctx.TakeID()
	t.module.AddType(build(id))
	t.byKey[key] = id
	return id
}

// Void returns (interning) the id of OpTypeVoid.
func (t *TypeTable) Void() uint32 {
	return t.intern("void", func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		return ib.Build(OpTypeVoid)
	})
}

// Bool returns (interning) the id of OpTypeBool.
func (t *TypeTable) Bool() uint32 {
	return t.intern("bool", func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		return ib.Build(OpTypeBool)
	})
}

// Int returns (interning) the id of a signed/unsigned OpTypeInt of the
// given bit width.
func (t *TypeTable) Int(width uint32, signed bool) uint32 {
	key := typeKey(fmt.Sprintf("int:%d:%t", width, signed))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWord(width)
		if signed {
			ib.AddWord(1)
		} else {
			ib.AddWord(0)
		}
		return ib.Build(OpTypeInt)
	})
}

// Float returns (interning) the id of an OpTypeFloat of the given bit
// width.
func (t *TypeTable) Float(width uint32) uint32 {
	key := typeKey(fmt.Sprintf("float:%d", width))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWord(width)
		return ib.Build(OpTypeFloat)
	})
}

// Vector returns (interning) the id of an OpTypeVector over elemType with
// the given component count.
func (t *TypeTable) Vector(elemType, count uint32) uint32 {
	key := typeKey(fmt.Sprintf("vec:%d:%d", elemType, count))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWord(elemType)
		ib.AddWord(count)
		return ib.Build(OpTypeVector)
	})
}

// Matrix returns (interning) the id of an OpTypeMatrix of columnCount
// columns, each of type columnType (a vector type id). HLSL matrices are
// row-major in source but SPIR-V OpTypeMatrix is column-oriented; the type
// translator passes each HLSL row vector as columnType and the row count as
// columnCount, and emits no majorness decoration.
func (t *TypeTable) Matrix(columnType, columnCount uint32) uint32 {
	key := typeKey(fmt.Sprintf("mat:%d:%d", columnType, columnCount))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWord(columnType)
		ib.AddWord(columnCount)
		return ib.Build(OpTypeMatrix)
	})
}

// Array returns (interning) the id of an OpTypeArray of elemType with the
// given length constant id.
func (t *TypeTable) Array(elemType, lengthConstID uint32) uint32 {
	key := typeKey(fmt.Sprintf("arr:%d:%d", elemType, lengthConstID))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWord(elemType)
		ib.AddWord(lengthConstID)
		return ib.Build(OpTypeArray)
	})
}

// Struct returns (interning) the id of an OpTypeStruct over memberTypes, in
// order.
func (t *TypeTable) Struct(memberTypes []uint32) uint32 {
	key := typeKey(fmt.Sprintf("struct:%v", memberTypes))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWords(memberTypes...)
		return ib.Build(OpTypeStruct)
	})
}

// Pointer returns (interning) the id of an OpTypePointer to pointeeType in
// the given storage class. Storage class is part of a pointer type's
// identity in SPIR-V: the same pointee in two storage classes is two
// distinct types.
func (t *TypeTable) Pointer(pointeeType uint32, class StorageClass) uint32 {
	key := typeKey(fmt.Sprintf("ptr:%d:%d", pointeeType, class))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWord(uint32(class))
		ib.AddWord(pointeeType)
		return ib.Build(OpTypePointer)
	})
}

// Function returns (interning) the id of an OpTypeFunction with the given
// return and parameter types.
func (t *TypeTable) Function(returnType uint32, paramTypes []uint32) uint32 {
	key := typeKey(fmt.Sprintf("fn:%d:%v", returnType, paramTypes))
	return t.intern(key, func(id uint32) Instruction {
		ib := NewInstructionBuilder()
		ib.AddWord(id)
		ib.AddWord(returnType)
		ib.AddWords(paramTypes...)
		return ib.Build(OpTypeFunction)
	})
}
