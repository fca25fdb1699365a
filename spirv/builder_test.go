package spirv

import "testing"

func TestCreateConditionalBranchSelectionMergeWithoutContinue(t *testing.T) {
	b := NewBuilder(Version1_3)
	voidT := b.Types.Void()
	fnType := b.Types.Function(voidT, nil)
	b.BeginFunction(fnType, voidT, "f")
	entry := b.CreateBasicBlock("entry")
	trueB := b.CreateBasicBlock("t")
	falseB := b.CreateBasicBlock("f")
	merge := b.CreateBasicBlock("m")
	b.SetInsertPoint(entry)

	cond := b.Constants.Bool(b.Types.Bool(), true)
	b.CreateConditionalBranch(cond, trueB, falseB, merge, 0)

	insts := b.fn.insertPoint.instructions
	if countOpcode(insts, OpSelectionMerge) != 1 {
		t.Error("a branch with mergeLabel but no continueLabel should emit OpSelectionMerge")
	}
	if countOpcode(insts, OpLoopMerge) != 0 {
		t.Error("a branch with no continueLabel must not emit OpLoopMerge")
	}
	if !b.IsCurrentBasicBlockTerminated() {
		t.Error("CreateConditionalBranch must terminate the block")
	}
}

func TestCreateConditionalBranchLoopMergeWithContinue(t *testing.T) {
	b := NewBuilder(Version1_3)
	voidT := b.Types.Void()
	fnType := b.Types.Function(voidT, nil)
	b.BeginFunction(fnType, voidT, "f")
	entry := b.CreateBasicBlock("entry")
	body := b.CreateBasicBlock("body")
	merge := b.CreateBasicBlock("merge")
	cont := b.CreateBasicBlock("continue")
	b.SetInsertPoint(entry)

	cond := b.Constants.Bool(b.Types.Bool(), true)
	b.CreateConditionalBranch(cond, body, merge, merge, cont)

	insts := b.fn.insertPoint.instructions
	if countOpcode(insts, OpLoopMerge) != 1 {
		t.Error("a branch with both mergeLabel and continueLabel should emit OpLoopMerge")
	}
	if countOpcode(insts, OpSelectionMerge) != 0 {
		t.Error("a loop branch must not also emit OpSelectionMerge")
	}
}

func TestCreateSwitchEmitsSelectionMergeThenSwitch(t *testing.T) {
	b := NewBuilder(Version1_3)
	voidT := b.Types.Void()
	fnType := b.Types.Function(voidT, nil)
	b.BeginFunction(fnType, voidT, "f")
	entry := b.CreateBasicBlock("entry")
	caseA := b.CreateBasicBlock("case.1")
	def := b.CreateBasicBlock("default")
	merge := b.CreateBasicBlock("merge")
	b.SetInsertPoint(entry)

	selector := b.Constants.Int32(b.Types.Int(32, true), 1)
	b.CreateSwitch(selector, def, merge, []SwitchCase{{Literal: 1, Target: caseA}})

	insts := b.fn.insertPoint.instructions
	if countOpcode(insts, OpSelectionMerge) != 1 || countOpcode(insts, OpSwitch) != 1 {
		t.Fatal("CreateSwitch should emit exactly one OpSelectionMerge and one OpSwitch")
	}
	if !containsInOrder(insts, []OpCode{OpSelectionMerge, OpSwitch}) {
		t.Error("OpSelectionMerge must precede OpSwitch")
	}
}

func TestEndFunctionHoistsVariablesToEntryBlock(t *testing.T) {
	b := NewBuilder(Version1_3)
	voidT := b.Types.Void()
	intT := b.Types.Int(32, true)
	ptrT := b.Types.Pointer(intT, StorageClassFunction)
	fnType := b.Types.Function(voidT, nil)
	b.BeginFunction(fnType, voidT, "f")
	entry := b.CreateBasicBlock("entry")
	b.SetInsertPoint(entry)
	b.CreateReturn()
	b.AddFnVariable(ptrT, "local", nil)

	if ok := b.EndFunction(); !ok {
		t.Fatal("EndFunction returned false")
	}

	words := decodeWords(t, b.TakeModule())
	insts := decodeInstructions(t, words)
	if countOpcode(insts, OpVariable) != 1 {
		t.Fatal("expected the hoisted OpVariable in the function section")
	}
	if !containsInOrder(insts, []OpCode{OpLabel, OpVariable, OpReturn}) {
		t.Error("OpVariable must be hoisted between the entry OpLabel and the first real instruction")
	}
}
