package spirv

import "github.com/gogpu/hlslspv/ast"

// basicBlock is one SPIR-V structured basic block under construction: an
// OpLabel id, its straight-line instruction list, and whether a terminator
// (OpBranch/OpBranchConditional/OpSwitch/OpReturn*/OpKill/OpUnreachable)
// has already been appended.
type basicBlock struct {
	label        uint32
	name         string
	instructions []Instruction
	terminated   bool
}

// functionInFlight tracks the one function a Builder may have under
// construction at a time, mirroring ModuleBuilder's theFunction/
// basicBlocks/insertPoint triple.
type functionInFlight struct {
	id         uint32
	funcType   uint32
	returnType uint32
	name       string
	params     []Instruction
	variables  []Instruction // function-scope OpVariable, must precede all other instructions in the entry block

	blocks      map[uint32]*basicBlock
	blockOrder  []uint32
	insertPoint *basicBlock
}

// Builder is the public, stateful API for constructing one SPIR-V module:
// it owns the id Context, the Module sections, the interned type and
// constant tables, and the single function/basic-block under construction
// at any time. Method names and behavior are grounded on
// clang::spirv::ModuleBuilder (ModuleBuilder.h).
type Builder struct {
	ctx       *Context
	module    *Module
	Types     *TypeTable
	Constants *ConstantTable

	addressingModel AddressingModel
	memoryModel     MemoryModel
	extInstSets     map[string]uint32
	recordTypes     map[*ast.RecordDecl]uint32

	fn *functionInFlight
}

// NewBuilder creates an empty Builder targeting the given SPIR-V version.
func NewBuilder(version Version) *Builder {
	ctx := NewContext()
	module := NewModule(version)
	return &Builder{
		ctx:       ctx,
		module:    module,
		Types:     NewTypeTable(ctx, module),
		Constants: NewConstantTable(ctx, module),
	}
}

// === Function and Basic Block ===

// AllocID reserves a fresh result id without emitting any instruction —
// used to forward-declare a function's id at its first call site, before
// the function itself has been lowered.
func (b *Builder) AllocID() uint32 {
	return b.ctx.TakeID()
}

// BeginFunction starts building a function of the given type/return type,
// allocating a fresh id for it. Only one function may be under
// construction at a time.
func (b *Builder) BeginFunction(funcType, returnType uint32, name string) uint32 {
	return b.BeginFunctionWithID(b.ctx.TakeID(), funcType, returnType, name)
}

// BeginFunctionWithID is BeginFunction for a callee whose id was already
// reserved by a forward-referencing call site (via AllocID).
func (b *Builder) BeginFunctionWithID(id, funcType, returnType uint32, name string) uint32 {
	b.fn = &functionInFlight{
		id:         id,
		funcType:   funcType,
		returnType: returnType,
		name:       name,
		blocks:     make(map[uint32]*basicBlock),
	}
	b.module.AddName(id, name)
	return id
}

// AddFnParameter registers a parameter of the current function and returns
// its result id.
func (b *Builder) AddFnParameter(ptrType uint32, name string) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(ptrType)
	ib.AddWord(id)
	b.fn.params = append(b.fn.params, ib.Build(OpFunctionParameter))
	b.module.AddName(id, name)
	return id
}

// AddFnVariable declares a function-scope local variable (OpVariable in the
// StorageClassFunction, always hoisted to the top of the entry block per
// the SPIR-V spec) and returns its result id. init, if non-nil, supplies an
// initializer operand.
func (b *Builder) AddFnVariable(ptrType uint32, name string, init *uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(ptrType)
	ib.AddWord(id)
	ib.AddWord(uint32(StorageClassFunction))
	if init != nil {
		ib.AddWord(*init)
	}
	b.fn.variables = append(b.fn.variables, ib.Build(OpVariable))
	b.module.AddName(id, name)
	return id
}

// EndFunction finishes the current function: all basic blocks created
// since BeginFunction are emitted, in creation order, with the function's
// hoisted variables prefixed onto the first (entry) block.
func (b *Builder) EndFunction() bool {
	fn := b.fn
	if fn == nil || len(fn.blockOrder) == 0 {
		return false
	}

	ib := NewInstructionBuilder()
	ib.AddWord(fn.returnType)
	ib.AddWord(fn.id)
	ib.AddWord(uint32(FunctionControlNone))
	ib.AddWord(fn.funcType)
	b.module.AddFunctionInstruction(ib.Build(OpFunction))
	for _, p := range fn.params {
		b.module.AddFunctionInstruction(p)
	}

	for i, label := range fn.blockOrder {
		block := fn.blocks[label]
		lib := NewInstructionBuilder()
		lib.AddWord(label)
		b.module.AddFunctionInstruction(lib.Build(OpLabel))
		if i == 0 {
			for _, v := range fn.variables {
				b.module.AddFunctionInstruction(v)
			}
		}
		for _, inst := range block.instructions {
			b.module.AddFunctionInstruction(inst)
		}
	}
	b.module.AddFunctionInstruction(NewInstructionBuilder().Build(OpFunctionEnd))

	b.fn = nil
	return true
}

// CreateBasicBlock creates a new, empty basic block and returns its label
// id. It does not change the insertion point.
func (b *Builder) CreateBasicBlock(name string) uint32 {
	label := b.ctx.TakeID()
	block := &basicBlock{label: label, name: name}
	b.fn.blocks[label] = block
	b.fn.blockOrder = append(b.fn.blockOrder, label)
	b.module.AddName(label, name)
	return label
}

// SetInsertPoint moves the insertion point to the block with the given
// label id.
func (b *Builder) SetInsertPoint(label uint32) {
	b.fn.insertPoint = b.fn.blocks[label]
}

// IsCurrentBasicBlockTerminated reports whether the block at the current
// insertion point already has a terminator instruction.
func (b *Builder) IsCurrentBasicBlockTerminated() bool {
	return b.fn.insertPoint != nil && b.fn.insertPoint.terminated
}

func (b *Builder) emit(inst Instruction) {
	b.fn.insertPoint.instructions = append(b.fn.insertPoint.instructions, inst)
}

func (b *Builder) terminate(inst Instruction) {
	b.emit(inst)
	b.fn.insertPoint.terminated = true
}

// === Structured control flow ===

// CreateBranch emits an unconditional OpBranch to target.
func (b *Builder) CreateBranch(target uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(target)
	b.terminate(ib.Build(OpBranch))
}

// CreateConditionalBranch emits OpBranchConditional, preceded by an
// OpSelectionMerge (if mergeLabel is non-zero and continueLabel == 0) or
// OpLoopMerge (if both mergeLabel and continueLabel are non-zero); no merge
// instruction is emitted when mergeLabel == 0 — matching
// ModuleBuilder::createConditionalBranch's convention exactly.
func (b *Builder) CreateConditionalBranch(condition, trueLabel, falseLabel, mergeLabel, continueLabel uint32) {
	if mergeLabel != 0 {
		if continueLabel != 0 {
			lib := NewInstructionBuilder()
			lib.AddWord(mergeLabel)
			lib.AddWord(continueLabel)
			lib.AddWord(uint32(LoopControlNone))
			b.emit(lib.Build(OpLoopMerge))
		} else {
			sib := NewInstructionBuilder()
			sib.AddWord(mergeLabel)
			sib.AddWord(uint32(SelectionControlNone))
			b.emit(sib.Build(OpSelectionMerge))
		}
	}
	ib := NewInstructionBuilder()
	ib.AddWord(condition)
	ib.AddWord(trueLabel)
	ib.AddWord(falseLabel)
	b.terminate(ib.Build(OpBranchConditional))
}

// SwitchCase is one literal-to-target-label pair of an OpSwitch, kept as an
// ordered slice (rather than a map) so the emitted case order matches the
// order the cases appeared in the source switch — required by the
// determinism guarantee in spec §5 ("the final module's function layout is
// deterministic given the AST") and exercised by scenario S5.
type SwitchCase struct {
	Literal uint32
	Target  uint32
}

// CreateSwitch emits an OpSwitch, preceded by an OpSelectionMerge targeting
// mergeLabel. cases lists literal selector values to target labels in the
// order they must appear in the instruction stream.
func (b *Builder) CreateSwitch(selector, defaultLabel, mergeLabel uint32, cases []SwitchCase) {
	sib := NewInstructionBuilder()
	sib.AddWord(mergeLabel)
	sib.AddWord(uint32(SelectionControlNone))
	b.emit(sib.Build(OpSelectionMerge))

	ib := NewInstructionBuilder()
	ib.AddWord(selector)
	ib.AddWord(defaultLabel)
	for _, c := range cases {
		ib.AddWord(c.Literal)
		ib.AddWord(c.Target)
	}
	b.terminate(ib.Build(OpSwitch))
}

// CreateReturn emits OpReturn.
func (b *Builder) CreateReturn() {
	b.terminate(NewInstructionBuilder().Build(OpReturn))
}

// CreateReturnValue emits OpReturnValue.
func (b *Builder) CreateReturnValue(value uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(value)
	b.terminate(ib.Build(OpReturnValue))
}

// CreateKill emits OpKill (fragment discard).
func (b *Builder) CreateKill() {
	b.terminate(NewInstructionBuilder().Build(OpKill))
}

// CreateUnreachable emits OpUnreachable.
func (b *Builder) CreateUnreachable() {
	b.terminate(NewInstructionBuilder().Build(OpUnreachable))
}

// === Instructions at the current insertion point ===

// CreateLoad emits OpLoad and returns the loaded value's result id.
func (b *Builder) CreateLoad(resultType, pointer uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(pointer)
	b.emit(ib.Build(OpLoad))
	return id
}

// CreateStore emits OpStore.
func (b *Builder) CreateStore(pointer, value uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(pointer)
	ib.AddWord(value)
	b.emit(ib.Build(OpStore))
}

// CreateAccessChain emits OpAccessChain and returns the pointer result id.
func (b *Builder) CreateAccessChain(resultType, base uint32, indices []uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(base)
	ib.AddWords(indices...)
	b.emit(ib.Build(OpAccessChain))
	return id
}

// CreateFunctionCall emits OpFunctionCall and returns the result id.
func (b *Builder) CreateFunctionCall(resultType, functionID uint32, args []uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(functionID)
	ib.AddWords(args...)
	b.emit(ib.Build(OpFunctionCall))
	return id
}

// CreateUnaryOp emits a unary operation with the given opcode.
func (b *Builder) CreateUnaryOp(op OpCode, resultType, operand uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(operand)
	b.emit(ib.Build(op))
	return id
}

// CreateBinaryOp emits a binary operation with the given opcode.
func (b *Builder) CreateBinaryOp(op OpCode, resultType, lhs, rhs uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(lhs)
	ib.AddWord(rhs)
	b.emit(ib.Build(op))
	return id
}

// CreateSelect emits OpSelect.
func (b *Builder) CreateSelect(resultType, condition, trueValue, falseValue uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(condition)
	ib.AddWord(trueValue)
	ib.AddWord(falseValue)
	b.emit(ib.Build(OpSelect))
	return id
}

// CreateCompositeConstruct emits OpCompositeConstruct.
func (b *Builder) CreateCompositeConstruct(resultType uint32, constituents []uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWords(constituents...)
	b.emit(ib.Build(OpCompositeConstruct))
	return id
}

// CreateCompositeExtract emits OpCompositeExtract.
func (b *Builder) CreateCompositeExtract(resultType, composite uint32, indices []uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(composite)
	ib.AddWords(indices...)
	b.emit(ib.Build(OpCompositeExtract))
	return id
}

// CreateVectorShuffle emits OpVectorShuffle.
func (b *Builder) CreateVectorShuffle(resultType, vec1, vec2 uint32, selectors []uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(vec1)
	ib.AddWord(vec2)
	ib.AddWords(selectors...)
	b.emit(ib.Build(OpVectorShuffle))
	return id
}

// CreateExtInst emits an OpExtInst against the given extended instruction
// set import id (e.g. GLSL.std.450).
func (b *Builder) CreateExtInst(resultType, extSet, instruction uint32, operands []uint32) uint32 {
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(extSet)
	ib.AddWord(instruction)
	ib.AddWords(operands...)
	b.emit(ib.Build(OpExtInst))
	return id
}

// === SPIR-V Module Structure ===

// RequireCapability declares a capability on the module.
func (b *Builder) RequireCapability(cap Capability) {
	b.module.AddCapability(cap)
}

// SetAddressingModel sets the module's addressing model.
func (b *Builder) SetAddressingModel(am AddressingModel) {
	b.addressingModel = am
	b.applyMemoryModel()
}

// SetMemoryModelKind sets the module's memory model.
func (b *Builder) SetMemoryModelKind(mm MemoryModel) {
	b.memoryModel = mm
	b.applyMemoryModel()
}

func (b *Builder) applyMemoryModel() {
	b.module.SetMemoryModel(b.addressingModel, b.memoryModel)
}

// ImportExtInstSet imports an extended instruction set by name (e.g.
// "GLSL.std.450") and returns its result id, de-duplicating repeat imports.
func (b *Builder) ImportExtInstSet(name string) uint32 {
	if id, ok := b.extInstSets[name]; ok {
		return id
	}
	id := b.ctx.TakeID()
	b.module.AddExtInstImport(id, name)
	if b.extInstSets == nil {
		b.extInstSets = make(map[string]uint32)
	}
	b.extInstSets[name] = id
	return id
}

// AddEntryPoint adds the module's entry point declaration.
func (b *Builder) AddEntryPoint(model ExecutionModel, funcID uint32, name string, interfaces []uint32) {
	b.module.AddEntryPoint(model, funcID, name, interfaces)
}

// AddExecutionMode adds an execution mode to an entry point.
func (b *Builder) AddExecutionMode(entryPointID uint32, mode ExecutionMode, params ...uint32) {
	b.module.AddExecutionMode(entryPointID, mode, params...)
}

// AddStageIOVariable declares a module-scope Input/Output stage variable of
// the given value type and returns its result id. The corresponding
// pointer type is constructed (and interned) automatically.
func (b *Builder) AddStageIOVariable(valueType uint32, class StorageClass) uint32 {
	ptrType := b.Types.Pointer(valueType, class)
	id := b.ctx.TakeID()
	ib := NewInstructionBuilder()
	ib.AddWord(ptrType)
	ib.AddWord(id)
	ib.AddWord(uint32(class))
	b.module.AddGlobalVariable(ib.Build(OpVariable))
	return id
}

// AddStageBuiltinVariable declares a module-scope builtin stage variable
// and decorates it with BuiltIn, returning its result id.
func (b *Builder) AddStageBuiltinVariable(valueType uint32, class StorageClass, builtin BuiltIn) uint32 {
	id := b.AddStageIOVariable(valueType, class)
	b.module.AddDecorate(id, DecorationBuiltIn, uint32(builtin))
	return id
}

// DecorateLocation decorates targetID with a Location decoration.
func (b *Builder) DecorateLocation(targetID, location uint32) {
	b.module.AddDecorate(targetID, DecorationLocation, location)
}

// Name assigns a debug OpName to id (a no-op under non-debug options is the
// emitter's call, not the builder's — Name here always emits).
func (b *Builder) Name(id uint32, name string) {
	b.module.AddName(id, name)
}

// TakeModule serializes and returns the finished module. The Builder must
// not be used again afterward (mirrors ModuleBuilder::takeModule's
// consuming semantics).
func (b *Builder) TakeModule() []byte {
	return b.module.Serialize(b.ctx.Bound())
}
