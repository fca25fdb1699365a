package spirv

import (
	"fmt"

	"github.com/gogpu/hlslspv/ast"
	"github.com/gogpu/hlslspv/diag"
)

// lowerStmt is the statement dispatcher.
func (e *Emitter) lowerStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.CompoundStmt:
		for _, child := range v.Body {
			e.lowerStmt(child)
		}

	case *ast.DeclStmt:
		for _, decl := range v.Decls {
			e.lowerLocalVar(decl)
		}

	case *ast.ReturnStmt:
		e.lowerReturn(v)

	case *ast.IfStmt:
		e.lowerIf(v)

	case *ast.ForStmt:
		e.lowerFor(v)

	case *ast.SwitchStmt:
		e.lowerSwitch(v)

	case *ast.CaseStmt:
		e.enterSwitchLabel(v, v.Sub)

	case *ast.DefaultStmt:
		e.enterSwitchLabel(v, v.Sub)

	case *ast.BreakStmt:
		e.lowerBreakStmt()

	case *ast.AttributedStmt:
		e.lowerStmt(v.Sub)

	case *ast.NullStmt:
		// no-op

	case ast.Expr:
		e.lowerExpr(v) // expression statement: lower for effect, discard the value

	default:
		e.unsupported("unsupported statement node")
	}
}

// lowerLocalVar allocates a function-scope pointer for one DeclStmt
// variable, attaching a constant initializer directly or storing a
// lowered rvalue one.
func (e *Emitter) lowerLocalVar(v *ast.VarDecl) {
	t := e.builder.TranslateType(v.Type)
	ptrType := e.builder.Types.Pointer(t, StorageClassFunction)

	if v.Init == nil {
		e.localVars[v] = e.builder.AddFnVariable(ptrType, v.Name, nil)
		return
	}

	if cv, ok := ast.EvaluateAsConstant(v.Init); ok {
		if constID, ok := e.constantFromValue(cv); ok {
			e.localVars[v] = e.builder.AddFnVariable(ptrType, v.Name, &constID)
			return
		}
	}

	id := e.builder.AddFnVariable(ptrType, v.Name, nil)
	e.localVars[v] = id
	val := e.lowerExpr(v.Init)
	e.builder.CreateStore(id, val)
}

// lowerReturn emits OpReturnValue for a non-entry function, or a store
// into the stage-out variable(s) followed by OpReturn for the entry
// function.
func (e *Emitter) lowerReturn(r *ast.ReturnStmt) {
	if !e.loweringEntry {
		if r.Value == nil {
			e.builder.CreateReturn()
			return
		}
		e.builder.CreateReturnValue(e.lowerExpr(r.Value))
		return
	}

	switch {
	case e.entryReturnStruct != nil:
		e.lowerEntryStructReturn(r.Value)
	case r.Value != nil:
		e.builder.CreateStore(e.entryReturnVar, e.lowerExpr(r.Value))
	}
	e.builder.CreateReturn()
}

// lowerEntryStructReturn stores each field of a struct-typed return value
// into its corresponding stage-out variable. Per the original's
// doReturnStmt, a return naming a local struct variable has its implicit
// LValueToRValue cast stripped so the local's own pointer can be
// access-chained per field instead of reloading the whole struct.
func (e *Emitter) lowerEntryStructReturn(retExpr ast.Expr) {
	stripped := ast.IgnoreParenLValueCasts(retExpr)

	var basePtr uint32
	if isLValue(stripped) {
		basePtr = e.lowerExpr(stripped)
	} else {
		val := e.lowerExpr(retExpr)
		t := e.builder.TranslateType(retExpr.ExprType())
		ptrType := e.builder.Types.Pointer(t, StorageClassFunction)
		basePtr = e.builder.AddFnVariable(ptrType, "ret.tmp", nil)
		e.builder.CreateStore(basePtr, val)
	}

	for _, f := range e.entryReturnStruct.Fields {
		fieldType := e.builder.TranslateType(f.Type)
		ptrType := e.builder.Types.Pointer(fieldType, StorageClassFunction)
		idx := e.builder.Constants.Uint32(e.builder.Types.Int(scalarWidth, false), uint32(f.Index))
		fieldPtr := e.builder.CreateAccessChain(ptrType, basePtr, []uint32{idx})
		loaded := e.builder.CreateLoad(fieldType, fieldPtr)
		e.builder.CreateStore(e.decls.FieldStageVar(f), loaded)
	}
}

// lowerIf creates blocks if.true/if.merge, plus if.false when an else
// branch exists (else the false edge reuses merge).
func (e *Emitter) lowerIf(s *ast.IfStmt) {
	cond := e.lowerExpr(s.Cond)

	trueBlock := e.builder.CreateBasicBlock("if.true")
	mergeBlock := e.builder.CreateBasicBlock("if.merge")
	hasElse := s.Else != nil
	falseBlock := mergeBlock
	if hasElse {
		falseBlock = e.builder.CreateBasicBlock("if.false")
	}

	e.builder.CreateConditionalBranch(cond, trueBlock, falseBlock, mergeBlock, 0)

	e.builder.SetInsertPoint(trueBlock)
	e.lowerStmt(s.Then)
	if !e.builder.IsCurrentBasicBlockTerminated() {
		e.builder.CreateBranch(mergeBlock)
	}

	if hasElse {
		e.builder.SetInsertPoint(falseBlock)
		e.lowerStmt(s.Else)
		if !e.builder.IsCurrentBasicBlockTerminated() {
			e.builder.CreateBranch(mergeBlock)
		}
	}

	e.builder.SetInsertPoint(mergeBlock)
}

// lowerFor creates blocks for.check/for.body/for.continue/for.merge, with
// for.merge pushed on the break stack for the body.
func (e *Emitter) lowerFor(s *ast.ForStmt) {
	checkBlock := e.builder.CreateBasicBlock("for.check")
	bodyBlock := e.builder.CreateBasicBlock("for.body")
	continueBlock := e.builder.CreateBasicBlock("for.continue")
	mergeBlock := e.builder.CreateBasicBlock("for.merge")

	if s.Init != nil {
		e.lowerStmt(s.Init)
	}
	e.builder.CreateBranch(checkBlock)

	e.builder.SetInsertPoint(checkBlock)
	var cond uint32
	if s.Cond != nil {
		cond = e.lowerExpr(s.Cond)
	} else {
		cond = e.builder.Constants.Bool(e.builder.Types.Bool(), true)
	}
	e.builder.CreateConditionalBranch(cond, bodyBlock, mergeBlock, mergeBlock, continueBlock)

	e.breakStack = append(e.breakStack, mergeBlock)
	e.builder.SetInsertPoint(bodyBlock)
	e.lowerStmt(s.Body)
	if !e.builder.IsCurrentBasicBlockTerminated() {
		e.builder.CreateBranch(continueBlock)
	}
	e.breakStack = e.breakStack[:len(e.breakStack)-1]

	e.builder.SetInsertPoint(continueBlock)
	if s.Inc != nil {
		e.lowerExpr(s.Inc)
	}
	if !e.builder.IsCurrentBasicBlockTerminated() {
		e.builder.CreateBranch(checkBlock)
	}

	e.builder.SetInsertPoint(mergeBlock)
}

// lowerBreakStmt branches to the break stack's top.
func (e *Emitter) lowerBreakStmt() {
	if len(e.breakStack) == 0 {
		e.unsupported("break outside an enclosing loop or switch")
		return
	}
	target := e.breakStack[len(e.breakStack)-1]
	if !e.builder.IsCurrentBasicBlockTerminated() {
		e.builder.CreateBranch(target)
	}
}

// enterSwitchLabel is the shared CaseStmt/DefaultStmt handler: before
// lowering its sub-statement, it ensures the previous block branches to
// its own block, then sets the insert point there. Fall-through across
// subsequent sibling statements in the enclosing CompoundStmt is natural:
// the insert point simply stays at this label's block until the next one
// resets it.
func (e *Emitter) enterSwitchLabel(node ast.Stmt, sub ast.Stmt) {
	block, ok := e.switchBlocks[node]
	if !ok {
		e.unsupported("case/default label outside an OpSwitch-strategy switch")
		return
	}
	if !e.builder.IsCurrentBasicBlockTerminated() {
		e.builder.CreateBranch(block)
	}
	e.builder.SetInsertPoint(block)
	e.lowerStmt(sub)
}

// switchCase is one CaseStmt/DefaultStmt discovered in a switch body, with
// its folded literal value (meaningful only when !isDefault).
type switchCase struct {
	node      ast.Stmt
	value     int32
	isDefault bool
}

// collectSwitchCases walks only the switch body's own top-level statement
// list, following each CaseStmt/DefaultStmt's Sub chain for fall-through
// labels ("case 1: case 2: ..."), without descending into ordinary nested
// statements (a brace block inside a case is not rescanned for further
// labels). allLiteral is false if any case value fails to fold to a
// 32-bit integer constant.
func collectSwitchCases(body ast.Stmt) (cases []switchCase, allLiteral bool) {
	compound, ok := body.(*ast.CompoundStmt)
	if !ok {
		compound = &ast.CompoundStmt{Body: []ast.Stmt{body}}
	}
	allLiteral = true

	var walkChain func(ast.Stmt)
	walkChain = func(s ast.Stmt) {
		switch v := s.(type) {
		case *ast.CaseStmt:
			var value int32
			cv, ok := ast.EvaluateAsConstant(v.Value)
			if ok && cv.Kind == ast.ConstUint {
				value = int32(cv.Uint)
			} else if ok && cv.Kind == ast.ConstInt {
				value = int32(cv.Int)
			} else {
				allLiteral = false
			}
			cases = append(cases, switchCase{node: v, value: value})
			walkChain(v.Sub)
		case *ast.DefaultStmt:
			cases = append(cases, switchCase{node: v, isDefault: true})
			walkChain(v.Sub)
		default:
			// the chain bottoms out at the label's real body statement
		}
	}
	for _, top := range compound.Body {
		walkChain(top)
	}
	return cases, allLiteral
}

// switchCaseBlockName derives each case block's name:
// "switch.<literal>" or "switch.n<abs>" for negatives, "switch.default".
func switchCaseBlockName(c switchCase) string {
	if c.isDefault {
		return "switch.default"
	}
	if c.value < 0 {
		return fmt.Sprintf("switch.n%d", -int64(c.value))
	}
	return fmt.Sprintf("switch.%d", c.value)
}

// lowerSwitch uses the OpSwitch strategy when every case label folds to a
// 32-bit integer literal, else reports KindUnsupported (an if-chain
// fallback for non-literal case labels is not implemented).
func (e *Emitter) lowerSwitch(s *ast.SwitchStmt) {
	if s.Init != nil {
		e.lowerStmt(s.Init)
	}
	selector := e.lowerExpr(s.Cond)

	cases, allLiteral := collectSwitchCases(s.Body)
	if !allLiteral {
		if ast.HasForceCase(s.Attrs) {
			e.sink.Warning(diag.New(diag.KindUnsupported, "forcecase attribute ignored: switch cases are not all integer literals"))
		}
		e.unsupported("switch statement requires the if-based lowering strategy, which is not implemented")
		return
	}

	if e.switchBlocks == nil {
		e.switchBlocks = make(map[ast.Stmt]uint32)
	}
	targets := make([]SwitchCase, 0, len(cases))
	var defaultBlock uint32
	for _, c := range cases {
		block := e.builder.CreateBasicBlock(switchCaseBlockName(c))
		e.switchBlocks[c.node] = block
		if c.isDefault {
			defaultBlock = block
		} else {
			targets = append(targets, SwitchCase{Literal: uint32(c.value), Target: block})
		}
	}
	mergeBlock := e.builder.CreateBasicBlock("switch.merge")
	if defaultBlock == 0 {
		defaultBlock = mergeBlock
	}

	e.builder.CreateSwitch(selector, defaultBlock, mergeBlock, targets)

	e.breakStack = append(e.breakStack, mergeBlock)
	e.lowerStmt(s.Body)
	if !e.builder.IsCurrentBasicBlockTerminated() {
		e.builder.CreateBranch(mergeBlock)
	}
	e.breakStack = e.breakStack[:len(e.breakStack)-1]

	e.builder.SetInsertPoint(mergeBlock)
}
