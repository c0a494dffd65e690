package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skx/cc-mini/ast"
	"github.com/skx/cc-mini/lexer"
	"github.com/skx/cc-mini/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.Parse()
	assert.NoError(t, err)
	assert.NotNil(t, prog)
	return prog
}

func TestParseSimpleFunction(t *testing.T) {
	prog := parse(t, `int main() { return 0; }`)

	assert.Equal(t, 1, len(prog.Statements))
	fn := prog.Statements[0]
	assert.Equal(t, ast.FunctionDefinition, fn.Kind)
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, 0, len(fn.Parameters))
	assert.Equal(t, ast.Block, fn.Body.Kind)
	assert.Equal(t, 1, len(fn.Body.Statements))

	ret := fn.Body.Statements[0]
	assert.Equal(t, ast.Return, ret.Kind)
	assert.Equal(t, ast.IntegerLiteral, ret.Expr.Kind)
	assert.Equal(t, int32(0), ret.Expr.IntValue)
}

func TestParseLocalDeclarationAndOffsets(t *testing.T) {
	prog := parse(t, `int main() { int a; int b; return a; }`)

	fn := prog.Statements[0]
	body := fn.Body.Statements

	decA := body[0]
	assert.Equal(t, ast.InitDeclaration, decA.Kind)
	assert.Equal(t, "a", decA.VarName)
	assert.Equal(t, 8, decA.Offset)
	assert.Nil(t, decA.Initializer)

	decB := body[1]
	assert.Equal(t, "b", decB.VarName)
	assert.Equal(t, 16, decB.Offset)

	assert.Equal(t, 16, fn.FrameSize)
}

func TestParseLocalsResetAcrossFunctions(t *testing.T) {
	prog := parse(t, `
int f() { int a; return a; }
int g() { int b; int c; return b; }
`)

	f := prog.Statements[0]
	g := prog.Statements[1]

	assert.Equal(t, 8, f.FrameSize)
	assert.Equal(t, 16, g.FrameSize)

	// b in g() gets the same offset a got in f(): the table was cleared.
	assert.Equal(t, f.Body.Statements[0].Offset, g.Body.Statements[0].Offset)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parse(t, `int main() { return 1+2*3; }`)

	ret := prog.Statements[0].Body.Statements[0]
	top := ret.Expr
	assert.Equal(t, ast.Binary, top.Kind)
	assert.Equal(t, ast.Add, top.Operator)
	assert.Equal(t, int32(1), top.Left.IntValue)

	right := top.Right
	assert.Equal(t, ast.Binary, right.Kind)
	assert.Equal(t, ast.Mul, right.Operator)
	assert.Equal(t, int32(2), right.Left.IntValue)
	assert.Equal(t, int32(3), right.Right.IntValue)
}

func TestParseLeftAssociativity(t *testing.T) {
	prog := parse(t, `int main() { return 1-2-3; }`)

	top := prog.Statements[0].Body.Statements[0].Expr
	assert.Equal(t, ast.Sub, top.Operator)
	assert.Equal(t, int32(3), top.Right.IntValue)

	left := top.Left
	assert.Equal(t, ast.Sub, left.Operator)
	assert.Equal(t, int32(1), left.Left.IntValue)
	assert.Equal(t, int32(2), left.Right.IntValue)
}

func TestParseAssignmentRightAssociativity(t *testing.T) {
	prog := parse(t, `int main() { int a; int b; a = b = 5; return a; }`)

	assignStmt := prog.Statements[0].Body.Statements[2]
	assign := assignStmt.Expr
	assert.Equal(t, ast.Assign, assign.Operator)
	assert.Equal(t, "a", assign.Left.Name)

	inner := assign.Right
	assert.Equal(t, ast.Assign, inner.Operator)
	assert.Equal(t, "b", inner.Left.Name)
	assert.Equal(t, int32(5), inner.Right.IntValue)
}

func TestParseGreaterThanNormalisedToLess(t *testing.T) {
	prog := parse(t, `int main() { return 1 > 2; }`)

	top := prog.Statements[0].Body.Statements[0].Expr
	assert.Equal(t, ast.Lt, top.Operator)
	assert.Equal(t, int32(2), top.Left.IntValue)
	assert.Equal(t, int32(1), top.Right.IntValue)
}

func TestParsePointerToArrayQuirk(t *testing.T) {
	prog := parse(t, `int main() { int *a[10]; return 0; }`)

	dec := prog.Statements[0].Body.Statements[0]
	assert.True(t, dec.DeclType.IsPointer())
	assert.True(t, dec.DeclType.Elem().IsArray())
	assert.Equal(t, 10, dec.DeclType.Elem().Count)
	assert.Equal(t, types.Int, dec.DeclType.Elem().Inner.Primitive)
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, `int main() { if (1) return 1; else return 2; }`)

	ifStmt := prog.Statements[0].Body.Statements[0]
	assert.Equal(t, ast.If, ifStmt.Kind)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseWhileLoop(t *testing.T) {
	prog := parse(t, `int main() { int i; while (i) i = i - 1; return 0; }`)

	loop := prog.Statements[0].Body.Statements[1]
	assert.Equal(t, ast.While, loop.Kind)
	assert.NotNil(t, loop.Cond)
	assert.NotNil(t, loop.Body)
}

func TestParseForLoopAllClausesOptional(t *testing.T) {
	prog := parse(t, `int main() { for (;;) return 0; }`)

	loop := prog.Statements[0].Body.Statements[0]
	assert.Equal(t, ast.For, loop.Kind)
	assert.Nil(t, loop.Init)
	assert.Nil(t, loop.Cond)
	assert.Nil(t, loop.Post)
}

func TestParseCallWithArguments(t *testing.T) {
	prog := parse(t, `int main() { return add(1, 2); }`)

	call := prog.Statements[0].Body.Statements[0].Expr
	assert.Equal(t, ast.Call, call.Kind)
	assert.Equal(t, "add", call.Callee)
	assert.Equal(t, 2, len(call.Arguments))
}

func TestParseTooManyArgumentsIsError(t *testing.T) {
	p := New(lexer.New(`int main() { return f(1,2,3,4,5,6,7); }`))
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestParseSizeofIsACallLikeForm(t *testing.T) {
	prog := parse(t, `int main() { int a; return sizeof(a); }`)

	call := prog.Statements[0].Body.Statements[1].Expr
	assert.Equal(t, ast.Call, call.Kind)
	assert.Equal(t, "sizeof", call.Callee)
	assert.Equal(t, 1, len(call.Arguments))
}

func TestParseArrayLiteralInitializer(t *testing.T) {
	prog := parse(t, `int main() { int a[3] = {1,2,3}; return 0; }`)

	dec := prog.Statements[0].Body.Statements[0]
	assert.Equal(t, ast.ArrayLiteral, dec.Initializer.Kind)
	assert.Equal(t, 3, len(dec.Initializer.Elements))
}

func TestParseIndexExpression(t *testing.T) {
	prog := parse(t, `int main() { int a[3]; return a[1]; }`)

	idx := prog.Statements[0].Body.Statements[1].Expr
	assert.Equal(t, ast.Index, idx.Kind)
	assert.Equal(t, "a", idx.Base.Name)
	assert.Equal(t, int32(1), idx.Index.IntValue)
}

func TestBareReturnIsRejected(t *testing.T) {
	p := New(lexer.New(`int main() { return; }`))
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestUndefinedVariableIsError(t *testing.T) {
	p := New(lexer.New(`int main() { return a; }`))
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestInvalidAssignmentTargetIsError(t *testing.T) {
	p := New(lexer.New(`int main() { 5 = 1; return 0; }`))
	_, err := p.Parse()
	assert.Error(t, err)
}
