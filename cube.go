package main

// The semantic cube: a total function over a closed, finite domain. All
// arithmetic on int×int stays int, any float operand promotes the result to
// float, and relational operators always yield int truth values.

type cubeKey struct {
	left, right Type
	op          Op
}

type unaryKey struct {
	operand Type
	op      Op
}

var semanticCube = map[cubeKey]Type{}

var unaryCube = map[unaryKey]Type{
	{typeInt, opPlus}:    typeInt,
	{typeInt, opMinus}:   typeInt,
	{typeFloat, opPlus}:  typeFloat,
	{typeFloat, opMinus}: typeFloat,
}

func init() {
	numeric := [...]Type{typeInt, typeFloat}
	for _, l := range numeric {
		for _, r := range numeric {
			t := typeInt
			if l == typeFloat || r == typeFloat {
				t = typeFloat
			}
			for _, op := range [...]Op{opPlus, opMinus, opMul, opDiv} {
				semanticCube[cubeKey{l, r, op}] = t
			}
			for _, op := range [...]Op{opGT, opLT, opNEQ} {
				semanticCube[cubeKey{l, r, op}] = typeInt
			}
		}
	}
}

// binaryResult returns the result type for left op right, or "" when the
// combination is incompatible; the caller owns the diagnostic.
func binaryResult(left, right Type, op Op) Type {
	return semanticCube[cubeKey{left, right, op}]
}

// unaryResult returns the result type for a unary sign application, or "".
func unaryResult(operand Type, op Op) Type {
	return unaryCube[unaryKey{operand, op}]
}

// canAssign reports whether an expression of type from may be stored into a
// slot of type to: identical types, or int widening into float.
func canAssign(to, from Type) bool {
	if to == from {
		return true
	}
	return to == typeFloat && from == typeInt
}
