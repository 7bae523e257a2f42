package ir

import (
	"fmt"

	"llvm.org/llvm/final/bindings/go/llvm"
)

// llvmBuilder backs Builder with the official LLVM Go bindings, the same
// library the teacher repo's codegen.go drives directly. Where the
// teacher's Kaleidoscope-derived generator works in double-precision
// floats, every operation here works in the source language's one numeric
// type: 64-bit signed integers.
type llvmBuilder struct {
	ctx     llvm.Context
	builder llvm.Builder
	module  llvm.Module
	fpm     llvm.PassManager
	i64     llvm.Type
}

// NewLLVMBuilder creates a Builder backed by a fresh LLVM module named
// moduleName, with the same local optimization passes the teacher wires up
// in NewCodeGen (minus the float-specific reassociation pass, which has no
// bearing on integer-only IR).
func NewLLVMBuilder(moduleName string) Builder {
	ctx := llvm.NewContext()
	module := ctx.NewModule(moduleName)

	b := &llvmBuilder{
		ctx:     ctx,
		builder: ctx.NewBuilder(),
		module:  module,
		i64:     ctx.Int64Type(),
	}

	b.fpm = llvm.NewFunctionPassManagerForModule(module)
	b.fpm.AddPromoteMemoryToRegisterPass()
	b.fpm.AddInstructionCombiningPass()
	b.fpm.AddGVNPass()
	b.fpm.AddCFGSimplificationPass()
	b.fpm.InitializeFunc()

	return b
}

func (b *llvmBuilder) ConstantInt(v int64) Value {
	return llvm.ConstInt(b.i64, uint64(v), true)
}

func (b *llvmBuilder) Add(lhs, rhs Value, name string) Value {
	return b.builder.CreateAdd(lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (b *llvmBuilder) Sub(lhs, rhs Value, name string) Value {
	return b.builder.CreateSub(lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (b *llvmBuilder) Mul(lhs, rhs Value, name string) Value {
	return b.builder.CreateMul(lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (b *llvmBuilder) SDiv(lhs, rhs Value, name string) Value {
	return b.builder.CreateExactSDiv(lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (b *llvmBuilder) ICmpEQ(lhs, rhs Value, name string) Value {
	return b.builder.CreateICmp(llvm.IntEQ, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (b *llvmBuilder) DeclareFunction(name string, paramNames []string) (Function, error) {
	if existing := b.module.NamedFunction(name); !existing.IsNil() {
		if existing.ParamsCount() != len(paramNames) {
			return nil, fmt.Errorf("redefinition of function %q with different number of args", name)
		}
		return existing, nil
	}

	params := make([]llvm.Type, len(paramNames))
	for i := range params {
		params[i] = b.i64
	}
	fnType := llvm.FunctionType(b.i64, params, false)
	fn := llvm.AddFunction(b.module, name, fnType)
	fn.SetLinkage(llvm.ExternalLinkage)

	for i, arg := range fn.Params() {
		arg.SetName(paramNames[i])
	}

	return fn, nil
}

func (b *llvmBuilder) LookupFunction(name string) (Function, bool) {
	fn := b.module.NamedFunction(name)
	if fn.IsNil() {
		return nil, false
	}
	return fn, true
}

func (b *llvmBuilder) ParamCount(fn Function) int {
	return fn.(llvm.Value).ParamsCount()
}

func (b *llvmBuilder) Param(fn Function, i int) Value {
	return fn.(llvm.Value).Param(i)
}

func (b *llvmBuilder) IsDefined(fn Function) bool {
	return fn.(llvm.Value).BasicBlocksCount() != 0
}

func (b *llvmBuilder) CreateEntryBlock(fn Function) Block {
	bb := llvm.AddBasicBlock(fn.(llvm.Value), "entry")
	b.builder.SetInsertPointAtEnd(bb)
	return bb
}

func (b *llvmBuilder) CreateBlock(fn Function, name string) Block {
	return llvm.AddBasicBlock(fn.(llvm.Value), name)
}

func (b *llvmBuilder) SetInsertPoint(blk Block) {
	b.builder.SetInsertPointAtEnd(blk.(llvm.BasicBlock))
}

func (b *llvmBuilder) InsertBlock() Block {
	return b.builder.GetInsertBlock()
}

func (b *llvmBuilder) CurrentFunction() Function {
	return b.builder.GetInsertBlock().Parent()
}

func (b *llvmBuilder) CondBr(cond Value, then, els Block) {
	b.builder.CreateCondBr(cond.(llvm.Value), then.(llvm.BasicBlock), els.(llvm.BasicBlock))
}

func (b *llvmBuilder) Br(target Block) {
	b.builder.CreateBr(target.(llvm.BasicBlock))
}

func (b *llvmBuilder) Call(fn Function, args []Value, name string) Value {
	llvmArgs := make([]llvm.Value, len(args))
	for i, a := range args {
		llvmArgs[i] = a.(llvm.Value)
	}
	return b.builder.CreateCall(fn.(llvm.Value), llvmArgs, name)
}

func (b *llvmBuilder) Ret(v Value) {
	b.builder.CreateRet(v.(llvm.Value))
}

func (b *llvmBuilder) Phi(incoming []Incoming, name string) Value {
	phi := b.builder.CreatePHI(b.i64, name)
	values := make([]llvm.Value, len(incoming))
	blocks := make([]llvm.BasicBlock, len(incoming))
	for i, in := range incoming {
		values[i] = in.Value.(llvm.Value)
		blocks[i] = in.Block.(llvm.BasicBlock)
	}
	phi.AddIncoming(values, blocks)
	return phi
}

func (b *llvmBuilder) VerifyFunction(fn Function) error {
	if ok := llvm.VerifyFunction(fn.(llvm.Value), llvm.ReturnStatusAction); ok != nil {
		return fmt.Errorf("function %q failed verification: %w", fn.(llvm.Value).Name(), ok)
	}
	return nil
}

func (b *llvmBuilder) RunLocalOptimizations(fn Function) {
	b.fpm.RunFunc(fn.(llvm.Value))
}

func (b *llvmBuilder) EraseFunction(fn Function) {
	fn.(llvm.Value).EraseFromParentAsFunction()
}

func (b *llvmBuilder) EmitTextual() ([]byte, error) {
	return []byte(b.module.String()), nil
}
