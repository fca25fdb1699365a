package spirv

import "encoding/binary"

// Module holds the ordered instruction sections of a SPIR-V binary under
// construction, mirroring clang::spirv::SPIRVModule: capabilities,
// extensions, extended-instruction-set imports, the single memory model
// instruction, entry points, execution modes, debug strings/names,
// annotations, types/constants/global variables, and function bodies, in
// the fixed order the SPIR-V binary format requires.
type Module struct {
	version   Version
	generator uint32
	schema    uint32

	capabilities   []Instruction
	extensions     []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugStrings   []Instruction
	debugNames     []Instruction
	annotations    []Instruction
	types          []Instruction // OpType*, OpConstant*
	globalVars     []Instruction // OpVariable (module scope)
	functions      []Instruction // OpFunction ... OpFunctionEnd

	capSet map[Capability]bool
}

// NewModule creates an empty module targeting the given version.
func NewModule(version Version) *Module {
	return &Module{
		version:   version,
		generator: GeneratorID,
		capSet:    make(map[Capability]bool),
	}
}

// AddCapability appends an OpCapability, de-duplicating repeated requests
// (the emitter may require the same capability from several unrelated
// lowering steps).
func (m *Module) AddCapability(cap Capability) {
	if m.capSet[cap] {
		return
	}
	m.capSet[cap] = true
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(cap))
	m.capabilities = append(m.capabilities, ib.Build(OpCapability))
}

// AddExtInstImport appends an OpExtInstImport with the caller-allocated
// result id.
func (m *Module) AddExtInstImport(id uint32, name string) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(name)
	m.extInstImports = append(m.extInstImports, ib.Build(OpExtInstImport))
}

// SetMemoryModel sets the module's single OpMemoryModel instruction.
func (m *Module) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(addressing))
	ib.AddWord(uint32(memory))
	inst := ib.Build(OpMemoryModel)
	m.memoryModel = &inst
}

// AddEntryPoint appends an OpEntryPoint.
func (m *Module) AddEntryPoint(model ExecutionModel, funcID uint32, name string, interfaces []uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(model))
	ib.AddWord(funcID)
	ib.AddString(name)
	ib.AddWords(interfaces...)
	m.entryPoints = append(m.entryPoints, ib.Build(OpEntryPoint))
}

// AddExecutionMode appends an OpExecutionMode.
func (m *Module) AddExecutionMode(entryPointID uint32, mode ExecutionMode, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(entryPointID)
	ib.AddWord(uint32(mode))
	ib.AddWords(params...)
	m.executionModes = append(m.executionModes, ib.Build(OpExecutionMode))
}

// AddDebugString appends an OpString with the caller-allocated result id.
func (m *Module) AddDebugString(id uint32, text string) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(text)
	m.debugStrings = append(m.debugStrings, ib.Build(OpString))
}

// AddName appends an OpName.
func (m *Module) AddName(id uint32, name string) {
	if name == "" {
		return
	}
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(name)
	m.debugNames = append(m.debugNames, ib.Build(OpName))
}

// AddMemberName appends an OpMemberName.
func (m *Module) AddMemberName(structID, member uint32, name string) {
	if name == "" {
		return
	}
	ib := NewInstructionBuilder()
	ib.AddWord(structID)
	ib.AddWord(member)
	ib.AddString(name)
	m.debugNames = append(m.debugNames, ib.Build(OpMemberName))
}

// AddDecorate appends an OpDecorate.
func (m *Module) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(uint32(decoration))
	ib.AddWords(params...)
	m.annotations = append(m.annotations, ib.Build(OpDecorate))
}

// AddMemberDecorate appends an OpMemberDecorate.
func (m *Module) AddMemberDecorate(structID, member uint32, decoration Decoration, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(structID)
	ib.AddWord(member)
	ib.AddWord(uint32(decoration))
	ib.AddWords(params...)
	m.annotations = append(m.annotations, ib.Build(OpMemberDecorate))
}

// AddType appends a fully-built OpType*/OpConstant* instruction to the
// types-and-constants section; callers (the type/constant translator) own
// interning and id allocation.
func (m *Module) AddType(inst Instruction) {
	m.types = append(m.types, inst)
}

// AddGlobalVariable appends a module-scope OpVariable.
func (m *Module) AddGlobalVariable(inst Instruction) {
	m.globalVars = append(m.globalVars, inst)
}

// AddFunctionInstruction appends one instruction to the running function
// body section (used by Builder while a function is under construction).
func (m *Module) AddFunctionInstruction(inst Instruction) {
	m.functions = append(m.functions, inst)
}

// Serialize produces the final SPIR-V binary: the fixed 5-word header
// followed by the sections in their mandated order.
func (m *Module) Serialize(bound uint32) []byte {
	total := 5
	total += countWords(m.capabilities)
	total += countWords(m.extensions)
	total += countWords(m.extInstImports)
	if m.memoryModel != nil {
		total += len(m.memoryModel.Encode())
	}
	total += countWords(m.entryPoints)
	total += countWords(m.executionModes)
	total += countWords(m.debugStrings)
	total += countWords(m.debugNames)
	total += countWords(m.annotations)
	total += countWords(m.types)
	total += countWords(m.globalVars)
	total += countWords(m.functions)

	buf := make([]byte, total*4)
	off := 0
	putWord := func(w uint32) {
		binary.LittleEndian.PutUint32(buf[off:], w)
		off += 4
	}

	putWord(MagicNumber)
	putWord(versionWord(m.version))
	putWord(m.generator)
	putWord(bound)
	putWord(m.schema)

	off = writeAll(buf, off, m.capabilities)
	off = writeAll(buf, off, m.extensions)
	off = writeAll(buf, off, m.extInstImports)
	if m.memoryModel != nil {
		off = writeOne(buf, off, *m.memoryModel)
	}
	off = writeAll(buf, off, m.entryPoints)
	off = writeAll(buf, off, m.executionModes)
	off = writeAll(buf, off, m.debugStrings)
	off = writeAll(buf, off, m.debugNames)
	off = writeAll(buf, off, m.annotations)
	off = writeAll(buf, off, m.types)
	off = writeAll(buf, off, m.globalVars)
	_ = writeAll(buf, off, m.functions)

	return buf
}

func countWords(insts []Instruction) int {
	n := 0
	for _, inst := range insts {
		n += len(inst.Encode())
	}
	return n
}

func writeAll(buf []byte, off int, insts []Instruction) int {
	for _, inst := range insts {
		off = writeOne(buf, off, inst)
	}
	return off
}

func writeOne(buf []byte, off int, inst Instruction) int {
	for _, w := range inst.Encode() {
		binary.LittleEndian.PutUint32(buf[off:], w)
		off += 4
	}
	return off
}

func versionWord(v Version) uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}
