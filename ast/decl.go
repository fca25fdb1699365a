package ast

// Decl is any named declaration the emitter may need to assign a result-id
// to: functions, parameters, locals, and struct fields.
type Decl interface {
	declNode()
	DeclName() string
}

// FunctionDecl is an HLSL function definition, either the shader entry point
// or a plain callee.
type FunctionDecl struct {
	Name           string
	Params         []*ParmVarDecl
	ReturnType     Type
	ReturnSemantic string // "" if unannotated
	Body           *CompoundStmt
}

func (*FunctionDecl) declNode()          {}
func (d *FunctionDecl) DeclName() string { return d.Name }

// ParamDirection is the HLSL in/out/inout qualifier on a parameter.
type ParamDirection uint8

const (
	DirIn ParamDirection = iota
	DirOut
	DirInOut
)

// ParmVarDecl is a function parameter.
type ParmVarDecl struct {
	Name     string
	Type     Type
	Semantic string // "" if unannotated
	Dir      ParamDirection
}

func (*ParmVarDecl) declNode()          {}
func (d *ParmVarDecl) DeclName() string { return d.Name }

// VarDecl is a function-local variable.
type VarDecl struct {
	Name string
	Type Type
	Init Expr // nil if no initializer
}

func (*VarDecl) declNode()          {}
func (d *VarDecl) DeclName() string { return d.Name }

// FieldDecl is a struct member.
type FieldDecl struct {
	Name     string
	Type     Type
	Semantic string // "" if unannotated
	Index    int    // position within the owning RecordDecl
}

func (*FieldDecl) declNode()          {}
func (d *FieldDecl) DeclName() string { return d.Name }

// RecordDecl is an HLSL struct definition.
type RecordDecl struct {
	Name   string
	Fields []*FieldDecl
}

func (*RecordDecl) declNode()          {}
func (d *RecordDecl) DeclName() string { return d.Name }

// TranslationUnit is the full set of top-level declarations the emitter is
// asked to compile; the entry function is located among these by name.
type TranslationUnit struct {
	Decls []Decl
}

// FindFunction returns the FunctionDecl with the given name, or nil.
func (tu *TranslationUnit) FindFunction(name string) *FunctionDecl {
	for _, d := range tu.Decls {
		if fn, ok := d.(*FunctionDecl); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}
