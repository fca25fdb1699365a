package spirv

import "github.com/gogpu/hlslspv/ast"

// stageVarRecord is one materialized Input/Output stage variable, kept in
// creation order so DeclMapper.FinalizeStageIOLocations can assign
// consecutive locations per storage class.
type stageVarRecord struct {
	id      uint32
	class   StorageClass
	builtin bool
}

// DeclMapper tracks result-ids for AST declarations (register/get/
// get_or_register) and materializes HLSL semantic-annotated entry
// parameters/return fields as SPIR-V stage variables.
type DeclMapper struct {
	builder *Builder

	ids map[ast.Decl]uint32

	stageVars    []stageVarRecord
	fieldStageID map[*ast.FieldDecl]uint32
}

// NewDeclMapper creates an empty mapper bound to builder (stage variables
// are materialized through it).
func NewDeclMapper(builder *Builder) *DeclMapper {
	return &DeclMapper{
		builder:      builder,
		ids:          make(map[ast.Decl]uint32),
		fieldStageID: make(map[*ast.FieldDecl]uint32),
	}
}

// Register associates decl with id. Calling it twice for the same decl is
// a caller bug; the second call silently wins rather than panicking, since
// the Emitter never aborts eagerly on internal inconsistencies — callers
// that care check Get first.
func (m *DeclMapper) Register(decl ast.Decl, id uint32) {
	m.ids[decl] = id
}

// Get returns decl's id, or 0 if absent.
func (m *DeclMapper) Get(decl ast.Decl) uint32 {
	return m.ids[decl]
}

// GetOrRegister returns decl's id, allocating a fresh one via alloc if
// absent (used for forward-referenced call targets discovered by the work
// queue before their defining FunctionDecl has been lowered).
func (m *DeclMapper) GetOrRegister(decl ast.Decl, alloc func() uint32) uint32 {
	if id, ok := m.ids[decl]; ok {
		return id
	}
	id := alloc()
	m.ids[decl] = id
	return id
}

// FieldStageVar returns the stage-variable id registered for a struct
// field by CreateStageVarFromFnReturn, or 0 if the field carries no stage
// variable (e.g. was dropped — out of scope here, every field must carry a
// semantic).
func (m *DeclMapper) FieldStageVar(field *ast.FieldDecl) uint32 {
	return m.fieldStageID[field]
}

// stageClassFor returns Output for a return value / out-parameter and
// Input otherwise.
func stageClassFor(dir ast.ParamDirection) StorageClass {
	if dir == ast.DirOut {
		return StorageClassOutput
	}
	return StorageClassInput
}

func (m *DeclMapper) addStageVar(builder *Builder, valueType ast.Type, class StorageClass) uint32 {
	tid := builder.TranslateType(valueType)
	id := builder.AddStageIOVariable(tid, class)
	m.stageVars = append(m.stageVars, stageVarRecord{id: id, class: class})
	return id
}

// CreateStageVarFromFnReturn materializes the entry function's return
// value as stage-out variable(s). For a single-semantic scalar/vector
// return it returns that variable's id; the caller stores directly into
// it. For a struct return, it registers one stage-out variable per field
// (via FieldStageVar) and returns 0 — the caller must iterate fields.
func (m *DeclMapper) CreateStageVarFromFnReturn(fn *ast.FunctionDecl) uint32 {
	if rec, ok := fn.ReturnType.(ast.RecordType); ok {
		for _, f := range rec.Decl.Fields {
			id := m.addStageVar(m.builder, f.Type, StorageClassOutput)
			m.fieldStageID[f] = id
		}
		return 0
	}
	return m.addStageVar(m.builder, fn.ReturnType, StorageClassOutput)
}

// CreateStageVarFromFnParam materializes one entry-function parameter as a
// stage variable (Input, unless declared "out") and registers it
// so later DeclRefExpr lookups resolve to it.
func (m *DeclMapper) CreateStageVarFromFnParam(param *ast.ParmVarDecl) uint32 {
	id := m.addStageVar(m.builder, param.Type, stageClassFor(param.Dir))
	m.Register(param, id)
	return id
}

// FinalizeStageIOLocations assigns Location decorations to every
// non-builtin stage variable, Input and Output numbered independently,
// starting at 0, in creation order.
func (m *DeclMapper) FinalizeStageIOLocations() {
	var nextInput, nextOutput uint32
	for _, rec := range m.stageVars {
		if rec.builtin {
			continue
		}
		switch rec.class {
		case StorageClassInput:
			m.builder.DecorateLocation(rec.id, nextInput)
			nextInput++
		case StorageClassOutput:
			m.builder.DecorateLocation(rec.id, nextOutput)
			nextOutput++
		}
	}
}

// CollectStageVariables returns every stage-variable id, in creation
// order, for use as the OpEntryPoint interface list.
func (m *DeclMapper) CollectStageVariables() []uint32 {
	out := make([]uint32, len(m.stageVars))
	for i, rec := range m.stageVars {
		out[i] = rec.id
	}
	return out
}
