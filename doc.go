/* Memory layout and instruction set.

Virtual addresses are partitioned into eight fixed segments of 1000 cells
each; segment membership and primitive type are recoverable from the
address alone, and the VM relies on that:

	global int    [1000,2000)
	global float  [2000,3000)
	local int     [3000,4000)
	local float   [4000,5000)
	temp int      [5000,6000)
	temp float    [6000,7000)
	const int     [7000,8000)
	const float   [8000,9000)

Each function numbers its locals and temps from the segment base: the
compiler saves and resets the local/temp counters on function entry and
restores them on exit, and the VM gives every activation record fresh
local and temp stores, so a compiled address doubles as an offset into the
record. Globals and constants use one program-wide counter each.

The quadruple alphabet:

	PLUS MINUS MUL DIV        arithmetic; PLUS/MINUS with an absent second
	                          argument apply a unary sign
	GT LT NEQ                 relationals, yielding int 0/1
	=                         copy, with int→float widening at the target
	GOTO GOTOF                jumps; GOTOF falls through unless zero
	ERA PARAM GOSUB           the call protocol: ERA opens argument
	                          staging, PARAM reads one argument in the
	                          caller's context, GOSUB switches frames
	RETURN ENDFUNC            leave a function, RETURN writing the value
	                          into the callee's global return slot first
	PRINT                     write a value or string literal, no
	                          separator, no newline
	END                       halt

Division of two ints floors (7/2 == 3, -7/2 == -4); anything touching a
float divides truly. Division by zero, writes into the constant segments,
reads of unknown constant addresses, a frame pop with no frame, and
unknown opcodes are fatal runtime errors.

A note the source language inherits from its checker: a value-returning
function is not verified to return on every path. Falling off the end
leaves the previous value in the function's return slot: zero if it was
never written.
*/
package main
