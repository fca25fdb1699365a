package spirv

import (
	"encoding/binary"
	"testing"
)

// decodeWords turns a little-endian SPIR-V byte stream back into words, the
// inverse of Instruction.Encode/Module.Serialize.
func decodeWords(t *testing.T, b []byte) []uint32 {
	t.Helper()
	if len(b)%4 != 0 {
		t.Fatalf("module length %d is not a multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}

// decodeInstructions walks the instruction stream following the 5-word
// header, splitting it back into Instructions by each leading
// (wordCount<<16)|opcode header word.
func decodeInstructions(t *testing.T, words []uint32) []Instruction {
	t.Helper()
	if len(words) < 5 {
		t.Fatalf("module has only %d words, expected at least a 5-word header", len(words))
	}
	if words[0] != MagicNumber {
		t.Fatalf("bad magic number: got %#x, want %#x", words[0], MagicNumber)
	}
	var insts []Instruction
	for i := 5; i < len(words); {
		header := words[i]
		wordCount := header >> 16
		opcode := OpCode(header & 0xFFFF)
		if wordCount == 0 || i+int(wordCount) > len(words) {
			t.Fatalf("malformed instruction at word %d: count=%d opcode=%d", i, wordCount, opcode)
		}
		insts = append(insts, Instruction{Opcode: opcode, Words: words[i+1 : i+int(wordCount)]})
		i += int(wordCount)
	}
	return insts
}

func opcodesOf(insts []Instruction) []OpCode {
	out := make([]OpCode, len(insts))
	for i, inst := range insts {
		out[i] = inst.Opcode
	}
	return out
}

// containsInOrder reports whether every opcode in seq appears in insts, in
// the given relative order (not necessarily contiguous).
func containsInOrder(insts []Instruction, seq []OpCode) bool {
	i := 0
	for _, inst := range insts {
		if i == len(seq) {
			break
		}
		if inst.Opcode == seq[i] {
			i++
		}
	}
	return i == len(seq)
}

func countOpcode(insts []Instruction, op OpCode) int {
	n := 0
	for _, inst := range insts {
		if inst.Opcode == op {
			n++
		}
	}
	return n
}

func findOne(t *testing.T, insts []Instruction, op OpCode) Instruction {
	t.Helper()
	for _, inst := range insts {
		if inst.Opcode == op {
			return inst
		}
	}
	t.Fatalf("no opcode %d instruction found", op)
	return Instruction{}
}
