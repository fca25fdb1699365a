package spirv

import (
	"github.com/gogpu/hlslspv/ast"
	"github.com/gogpu/hlslspv/diag"
)

// Emitter is the AST-driven lowering pass: it walks declarations,
// statements, and expressions, drives the Module Builder and
// Declaration-Id Mapper, and never aborts eagerly on error — every failure
// is reported through Sink and lowering continues with a best-effort zero
// result id.
type Emitter struct {
	builder *Builder
	decls   *DeclMapper
	sink    diag.Sink
	tu      *ast.TranslationUnit

	entryFn *ast.FunctionDecl
	model   ExecutionModel

	// work queue: an ordered-unique-set of callees discovered while
	// lowering function bodies. Driven by index because lowering can grow it.
	queue    []*ast.FunctionDecl
	queued   map[*ast.FunctionDecl]bool
	queuePos int

	// localVars maps local variable and parameter decls of the function
	// currently being lowered to their function-scope pointer ids.
	localVars map[ast.Decl]uint32

	// entryReturnVar is the single stage-out variable id to store into on
	// a bare (non-struct) return in the entry function; entryReturnStruct
	// is consulted instead when the entry function returns a struct.
	entryReturnVar    uint32
	entryReturnStruct *ast.RecordDecl

	// breakStack is the LIFO of enclosing loop/switch merge-block ids that
	// a BreakStmt branches to.
	breakStack []uint32

	// switchBlocks maps each CaseStmt/DefaultStmt node reached by the
	// OpSwitch strategy to its basic block, populated by lowerSwitch before
	// the body is lowered.
	switchBlocks map[ast.Stmt]uint32

	// loweringEntry is true while lowering the entry function's body,
	// selecting the stage-variable return path over OpReturnValue.
	loweringEntry bool
}

// NewEmitter creates an Emitter targeting the given translation unit and
// code-generation options. opts.EntryPoint must name a FunctionDecl in tu.
func NewEmitter(tu *ast.TranslationUnit, opts CodeGenOptions, sink diag.Sink) *Emitter {
	version := opts.Version
	if version == (Version{}) {
		version = Version1_3
	}
	return &Emitter{
		builder: NewBuilder(version),
		tu:      tu,
		sink:    sink,
		queued:  make(map[*ast.FunctionDecl]bool),
	}
}

// Compile runs the full top-level lowering pipeline and returns the
// serialized SPIR-V module. If any error was reported through Sink, the
// caller should discard the returned bytes.
func (e *Emitter) Compile(opts CodeGenOptions) []byte {
	if len(opts.Profile) == 0 {
		e.sink.Error(diag.New(diag.KindUnknownProfile, "empty shader profile string"))
		return nil
	}
	model, ok := ExecutionModelFromProfileChar(opts.Profile[0])
	if !ok {
		e.sink.Error(diag.New(diag.KindUnknownProfile, "unrecognized shader profile %q", opts.Profile))
		return nil
	}
	e.model = model

	entry := e.tu.FindFunction(opts.EntryPoint)
	if entry == nil {
		e.sink.Error(diag.New(diag.KindInvalidAST, "entry point %q not found", opts.EntryPoint))
		return nil
	}
	e.entryFn = entry
	e.decls = NewDeclMapper(e.builder)

	e.builder.RequireCapability(RequiredCapability(model))
	e.builder.SetAddressingModel(AddressingModelLogical)
	e.builder.SetMemoryModelKind(MemoryModelGLSL450)

	e.enqueue(entry)
	entryID := e.lowerEntryFunction(entry)

	for e.queuePos < len(e.queue) {
		fn := e.queue[e.queuePos]
		e.queuePos++
		if fn == entry {
			continue
		}
		e.lowerFunction(fn)
	}

	interfaces := e.decls.CollectStageVariables()
	e.builder.AddEntryPoint(model, entryID, entry.Name, interfaces)
	if model == ExecutionModelFragment {
		e.builder.AddExecutionMode(entryID, ExecutionModeOriginUpperLeft)
	}
	e.decls.FinalizeStageIOLocations()

	return e.builder.TakeModule()
}

// enqueue adds fn to the work queue if not already present.
func (e *Emitter) enqueue(fn *ast.FunctionDecl) {
	if fn == nil || e.queued[fn] {
		return
	}
	e.queued[fn] = true
	e.queue = append(e.queue, fn)
}

// funcID returns fn's SPIR-V function id, reserving one via the builder's
// id allocator on first reference. A call site reached before fn's own
// lowering gets the same id lowerFunction/lowerEntryFunction later reuse.
func (e *Emitter) funcID(fn *ast.FunctionDecl) uint32 {
	return e.decls.GetOrRegister(fn, func() uint32 { return e.builder.AllocID() })
}

// funcType builds (and interns) the OpTypeFunction for a non-entry
// function: every HLSL parameter becomes a function-scope pointer operand.
func (e *Emitter) funcType(fn *ast.FunctionDecl) (funcTypeID, returnTypeID uint32, paramPtrTypes []uint32) {
	returnTypeID = e.builder.TranslateType(fn.ReturnType)
	paramPtrTypes = make([]uint32, len(fn.Params))
	for i, p := range fn.Params {
		valType := e.builder.TranslateType(p.Type)
		paramPtrTypes[i] = e.builder.Types.Pointer(valType, StorageClassFunction)
	}
	funcTypeID = e.builder.Types.Function(returnTypeID, paramPtrTypes)
	return
}

// lowerFunction lowers a non-entry function, keeping its HLSL signature.
// fn's id may already exist (a call site reached it first via
// e.funcID); GetOrRegister returns that reservation instead of minting a
// second one.
func (e *Emitter) lowerFunction(fn *ast.FunctionDecl) uint32 {
	funcTypeID, returnTypeID, paramPtrTypes := e.funcType(fn)
	fnID := e.funcID(fn)
	e.builder.BeginFunctionWithID(fnID, funcTypeID, returnTypeID, fn.Name)

	e.localVars = make(map[ast.Decl]uint32)
	for i, p := range fn.Params {
		paramID := e.builder.AddFnParameter(paramPtrTypes[i], p.Name)
		e.localVars[p] = paramID
	}

	entryBlock := e.builder.CreateBasicBlock("bb.entry")
	e.builder.SetInsertPoint(entryBlock)
	e.lowerStmt(fn.Body)
	if !e.builder.IsCurrentBasicBlockTerminated() {
		if _, ok := fn.ReturnType.(ast.VoidType); ok {
			e.builder.CreateReturn()
		} else {
			e.sink.Error(diag.New(diag.KindInternal, "function %q falls off the end without a return", fn.Name))
			e.builder.CreateUnreachable()
		}
	}
	e.builder.EndFunction()
	e.localVars = nil
	return fnID
}

// lowerEntryFunction lowers the shader entry point: its SPIR-V signature
// is always void(), semantic-annotated parameters/return become stage
// variables.
func (e *Emitter) lowerEntryFunction(fn *ast.FunctionDecl) uint32 {
	voidType := e.builder.Types.Void()
	fnType := e.builder.Types.Function(voidType, nil)
	fnID := e.funcID(fn)
	e.builder.BeginFunctionWithID(fnID, fnType, voidType, fn.Name)

	e.localVars = make(map[ast.Decl]uint32)
	for _, p := range fn.Params {
		e.decls.CreateStageVarFromFnParam(p)
	}

	if rec, ok := fn.ReturnType.(ast.RecordType); ok {
		e.entryReturnStruct = rec.Decl
		e.decls.CreateStageVarFromFnReturn(fn)
	} else if _, ok := fn.ReturnType.(ast.VoidType); !ok {
		e.entryReturnVar = e.decls.CreateStageVarFromFnReturn(fn)
	}

	entryBlock := e.builder.CreateBasicBlock("bb.entry")
	e.builder.SetInsertPoint(entryBlock)

	// Entry parameters are HLSL value parameters backed by stage variables;
	// the function body expects an addressable local, so copy each stage
	// Input into a function-scope variable up front. An "out" parameter has
	// no stage value to load — it gets a bare local the body writes into.
	for _, p := range fn.Params {
		valType := e.builder.TranslateType(p.Type)
		ptrType := e.builder.Types.Pointer(valType, StorageClassFunction)
		if p.Dir == ast.DirOut {
			e.localVars[p] = e.builder.AddFnVariable(ptrType, p.Name, nil)
			continue
		}
		stageID := e.decls.Get(p)
		loaded := e.builder.CreateLoad(valType, stageID)
		local := e.builder.AddFnVariable(ptrType, p.Name, nil)
		e.builder.CreateStore(local, loaded)
		e.localVars[p] = local
	}

	e.loweringEntry = true
	e.lowerStmt(fn.Body)
	e.loweringEntry = false
	if !e.builder.IsCurrentBasicBlockTerminated() {
		e.builder.CreateReturn()
	}
	e.builder.EndFunction()
	e.localVars = nil
	e.entryReturnStruct = nil
	e.entryReturnVar = 0
	return fnID
}
