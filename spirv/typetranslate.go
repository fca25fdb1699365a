package spirv

import "github.com/gogpu/hlslspv/ast"

// scalarWidth is the bit width this emitter uses for every HLSL scalar
// kind. HLSL's half/min16float precision qualifiers are accepted by the
// type checker but always widened to 32-bit SPIR-V types here; this
// emitter never produces a RelaxedPrecision decoration.
const scalarWidth = 32

// TranslateType maps an HLSL AST type to its (interned) SPIR-V type id.
// Matrices are rows-of-vectors: an HLSL Rows x Cols matrix becomes an
// OpTypeMatrix of Rows constituent vectors, each a Cols-component
// OpTypeVector.
func (b *Builder) TranslateType(t ast.Type) uint32 {
	switch v := t.(type) {
	case ast.VoidType:
		return b.Types.Void()

	case ast.ScalarType:
		return b.translateScalar(v)

	case ast.VectorType:
		elem := b.translateScalar(v.Elem)
		return b.Types.Vector(elem, uint32(v.Count))

	case ast.MatrixType:
		elem := b.translateScalar(v.Elem)
		row := b.Types.Vector(elem, uint32(v.Cols))
		return b.Types.Matrix(row, uint32(v.Rows))

	case ast.ArrayType:
		elem := b.TranslateType(v.Elem)
		lengthType := b.Types.Int(scalarWidth, false)
		length := b.Constants.Uint32(lengthType, v.Size)
		return b.Types.Array(elem, length)

	case ast.RecordType:
		return b.translateRecord(v)

	default:
		return 0
	}
}

func (b *Builder) translateScalar(t ast.Type) uint32 {
	kind, ok := ast.ScalarKindOf(t)
	if !ok {
		return 0
	}
	switch kind {
	case ast.ScalarBool:
		return b.Types.Bool()
	case ast.ScalarInt:
		return b.Types.Int(scalarWidth, true)
	case ast.ScalarUint:
		return b.Types.Int(scalarWidth, false)
	case ast.ScalarFloat:
		return b.Types.Float(scalarWidth)
	default:
		return 0
	}
}

// translateRecord caches struct-type ids per *ast.RecordDecl so repeated
// references to the same HLSL struct type intern to one OpTypeStruct; this
// rides on top of TypeTable's own structural interning (member-type ids
// alone would collide two distinct same-shaped structs).
func (b *Builder) translateRecord(v ast.RecordType) uint32 {
	if b.recordTypes == nil {
		b.recordTypes = make(map[*ast.RecordDecl]uint32)
	}
	if id, ok := b.recordTypes[v.Decl]; ok {
		return id
	}
	memberTypes := make([]uint32, 0, len(v.Decl.Fields))
	for _, f := range v.Decl.Fields {
		memberTypes = append(memberTypes, b.TranslateType(f.Type))
	}
	id := b.Types.Struct(memberTypes)
	b.recordTypes[v.Decl] = id
	for i, f := range v.Decl.Fields {
		b.module.AddMemberName(id, uint32(i), f.Name)
	}
	b.module.AddName(id, v.Decl.Name)
	return id
}
