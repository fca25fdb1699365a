// Package spirv implements the HLSL-to-SPIR-V emitter: an incremental
// module builder (Context, InstructionBuilder, Module), a type and constant
// translator with structural interning, a declaration-to-id mapper for
// stage I/O variables, and the statement/expression emitter that drives
// them from a typed HLSL AST (see the ast package).
//
// # Module construction
//
// Context allocates result ids, Module holds the ordered instruction
// sections a SPIR-V binary requires, and Builder is the stateful façade
// combining them with the one function under construction at a time:
//
//	b := spirv.NewBuilder(spirv.Version1_3)
//	b.RequireCapability(spirv.CapabilityShader)
//	b.SetAddressingModel(spirv.AddressingModelLogical)
//	b.SetMemoryModelKind(spirv.MemoryModelGLSL450)
//
//	floatType := b.Types.Float(32)
//	vec4Type := b.Types.Vector(floatType, 4)
//
//	binary := b.TakeModule()
//
// TypeTable and ConstantTable intern every OpType*/OpConstant* by
// structural equality, so two requests for the same shape always resolve
// to the same result id.
//
// # Emission
//
// Emitter drives TranslateType, DeclMapper, and Builder from a typed
// ast.TranslationUnit to produce a complete module for one entry point
// (see NewEmitter, Emitter.Compile).
//
// # SPIR-V Structure
//
// SPIR-V modules consist of:
//   - Header (magic, version, generator, bound, schema)
//   - Capabilities (required features)
//   - Extensions (optional extensions)
//   - Extended instruction imports (GLSL.std.450, etc.)
//   - Memory model (addressing and memory model)
//   - Entry points (shader entry functions)
//   - Execution modes (shader configuration)
//   - Debug information (names, source info)
//   - Annotations (decorations)
//   - Types and constants
//   - Global variables
//   - Functions (code)
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
