package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileForTest(t *testing.T, src string) (*compiler, *Object) {
	t.Helper()
	tree, err := parseProgram(src)
	require.NoError(t, err, "unexpected parse failure")
	c := newCompiler()
	c.declare(tree)
	c.emitProgram(tree)
	require.Empty(t, c.errs, "unexpected diagnostics")
	return c, c.object()
}

func quadsOf(obj *Object) []quad { return obj.Quads }

func TestSDT_expressionQuads(t *testing.T) {
	_, obj := compileForTest(t,
		`programa P; var a:int; main { a = 2 + 3 * 4; print(a); } end`)

	assert.Equal(t, []quad{
		{opGoto, noOperand, noOperand, addrOperand(1)},
		{opMul, addrOperand(7001), addrOperand(7002), addrOperand(5000)},
		{opPlus, addrOperand(7000), addrOperand(5000), addrOperand(5001)},
		{opAssign, addrOperand(5001), noOperand, addrOperand(1000)},
		{opPrint, addrOperand(1000), noOperand, noOperand},
		{opEnd, noOperand, noOperand, noOperand},
	}, quadsOf(obj))
}

func TestSDT_whileQuads(t *testing.T) {
	_, obj := compileForTest(t,
		`programa P; var i,s:int; main { i=1; s=0; while (i<6) do { s=s+i; i=i+1; }; print(s); } end`)

	assert.Equal(t, []quad{
		{opGoto, noOperand, noOperand, addrOperand(1)},
		{opAssign, addrOperand(7000), noOperand, addrOperand(1000)},
		{opAssign, addrOperand(7001), noOperand, addrOperand(1001)},
		{opLT, addrOperand(1000), addrOperand(7002), addrOperand(5000)},
		{opGotoF, addrOperand(5000), noOperand, addrOperand(10)},
		{opPlus, addrOperand(1001), addrOperand(1000), addrOperand(5001)},
		{opAssign, addrOperand(5001), noOperand, addrOperand(1001)},
		{opPlus, addrOperand(1000), addrOperand(7000), addrOperand(5002)},
		{opAssign, addrOperand(5002), noOperand, addrOperand(1000)},
		{opGoto, noOperand, noOperand, addrOperand(3)},
		{opPrint, addrOperand(1001), noOperand, noOperand},
		{opEnd, noOperand, noOperand, noOperand},
	}, quadsOf(obj))
}

func TestSDT_ifElseJumpPatching(t *testing.T) {
	_, obj := compileForTest(t,
		`programa P; var e:int; main { e=18; if (e>17) { print("M"); } else { print("m"); }; } end`)

	quads := quadsOf(obj)
	// GOTO-to-main, assignment, compare, GOTOF, then-print, GOTO, else-print, END
	require.Len(t, quads, 8)
	gotof := quads[3]
	assert.Equal(t, opGotoF, gotof.op)
	assert.Equal(t, addrOperand(6), gotof.res, "GOTOF jumps past the then arm and its exit GOTO")
	exit := quads[5]
	assert.Equal(t, opGoto, exit.op)
	assert.Equal(t, addrOperand(7), exit.res, "then-arm GOTO jumps past the else arm")
}

func TestSDT_gotoToMainSpansFunctions(t *testing.T) {
	_, obj := compileForTest(t,
		`programa P; var r:int; int sum(a:int,b:int)[{ return(a+b); }]; main { r = sum(10,25); print(r); } end`)

	quads := quadsOf(obj)
	require.Equal(t, opGoto, quads[0].op, "first quadruple is the jump to main")
	mainStart := quads[0].res.num()
	assert.Equal(t, 4, mainStart)
	assert.Equal(t, opEra, quads[mainStart].op, "main begins at the patched target")

	fi := obj.Funcs.get("sum")
	require.NotNil(t, fi)
	assert.Equal(t, 1, fi.quadStart)
	assert.Equal(t, typeInt, fi.ret)
	assert.Equal(t, 1001, fi.returnAddr, "return slot allocated after the global r")
	assert.Equal(t, resourceCounts{
		LocalInt: 2, TempInt: 1, ParamsInt: 2,
	}, fi.res)
}

func TestSDT_callProtocolQuads(t *testing.T) {
	_, obj := compileForTest(t,
		`programa P; var r:int; int sum(a:int,b:int)[{ return(a+b); }]; main { r = sum(10,25); } end`)

	assert.Equal(t, []quad{
		{opEra, nameOperand("sum"), noOperand, noOperand},
		{opParam, addrOperand(7000), noOperand, addrOperand(0)},
		{opParam, addrOperand(7001), noOperand, addrOperand(1)},
		{opGosub, nameOperand("sum"), noOperand, addrOperand(1)},
		{opAssign, addrOperand(1001), noOperand, addrOperand(5000)},
		{opAssign, addrOperand(5000), noOperand, addrOperand(1000)},
		{opEnd, noOperand, noOperand, noOperand},
	}, quadsOf(obj)[4:])
}

func TestSDT_stacksBalance(t *testing.T) {
	c, _ := compileForTest(t, `programa P; var a,b:int; main {
		a = ((1 + 2) * (3 + 4)) - -5;
		b = a * (a < 100);
		if (b != 0) { a = b / 2; };
	} end`)

	assert.Empty(t, c.jumps, "jump stack drains by end of compilation")
	assert.Empty(t, c.operators, "operator stack drains by end of compilation")
	assert.Empty(t, c.operands, "operand stack drains by end of compilation")
	assert.Empty(t, c.types, "type stack drains by end of compilation")
}

func TestSDT_determinism(t *testing.T) {
	const src = `programa P; var r:int;
		int fact(x:int)[{ if (x<2) { return(1); } else { return(x*fact(x-1)); }; }];
		main { r = fact(5); print(r); } end`
	_, first := compileForTest(t, src)
	_, second := compileForTest(t, src)
	assert.Equal(t, quadsOf(first), quadsOf(second), "emission is deterministic")
}

func TestSDT_functionCounterDiscipline(t *testing.T) {
	c, _ := compileForTest(t, `programa P;
		void a()[ var x:int; { x = 1; print(x+x); }];
		void b()[ var y:float; { y = 2.0; print(y*y); }];
		main { a(); b(); } end`)

	assert.Empty(t, c.memory.saved, "every enterFunction has a matching exit")
	// globals and constants never reset; locals/temps restored to main's view
	assert.Equal(t, 0, c.memory.counters[segLocalInt])
	assert.Equal(t, 0, c.memory.counters[segLocalFloat])
}

func TestSDT_diagnostics(t *testing.T) {
	for _, tc := range []struct {
		name, src, phrase string
	}{
		{"assign float to int", `programa P; var x:int; var y:float; main { y = 1.5; x = y; } end`,
			"cannot assign"},
		{"undeclared variable", `programa P; main { x = 1; } end`,
			"variable 'x' not declared"},
		{"undeclared in expression", `programa P; var a:int; main { a = b + 1; } end`,
			"variable 'b' not declared"},
		{"duplicate global", `programa P; var x:int; var x:float; main { x = 1; } end`,
			"duplicate variable 'x'"},
		{"local shadows parameter", `programa P; void f(a:int)[ var a:int; { print(a); }]; main { f(1); } end`,
			"duplicate variable 'a'"},
		{"duplicate function", `programa P; void f()[{ print(1); }]; void f()[{ print(2); }]; main { f(); } end`,
			"duplicate function 'f'"},
		{"undeclared function", `programa P; main { g(); } end`,
			"function 'g' not declared"},
		{"arity mismatch", `programa P; var r:int; int f(a:int)[{ return(a); }]; main { r = f(1,2); } end`,
			"expects 1 arguments, got 2"},
		{"argument type mismatch", `programa P; var r:int; int f(a:int)[{ return(a); }]; main { r = f(1.5); } end`,
			"argument 1 of 'f'"},
		{"void call as expression", `programa P; var r:int; void f()[{ print(1); }]; main { r = f(); } end`,
			"cannot be used as an expression"},
		{"return in void function", `programa P; void f()[{ return(1); }]; main { f(); } end`,
			"cannot return a value"},
		{"return outside function", `programa P; main { return(1); } end`,
			"return outside of a function"},
		{"incompatible return type", `programa P; int f()[ var y:float; { y = 1.5; return(y); }]; main { print(f()); } end`,
			"incompatible return type"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := Compile(tc.src)
			require.Error(t, err)
			assert.Nil(t, obj, "no object program on semantic failure")
			ds, ok := err.(diagnostics)
			require.True(t, ok, "want diagnostics, got %T: %v", err, err)
			found := false
			for _, d := range ds.All() {
				if strings.Contains(d, tc.phrase) {
					found = true
				}
			}
			assert.True(t, found, "no diagnostic contains %q in %v", tc.phrase, ds.All())
		})
	}
}

func TestSDT_collectsMultipleErrors(t *testing.T) {
	_, err := Compile(`programa P; var x:int; main { x = y; z = 1; x = 1.5; } end`)
	require.Error(t, err)
	ds, ok := err.(diagnostics)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(ds.All()), 3, "the SDT keeps walking after each error")
}
