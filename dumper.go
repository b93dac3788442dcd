package main

import (
	"fmt"
	"io"
	"sort"
)

// objDumper prints a compiled program: the quadruple listing, the constant
// pool, and the function directory. This is what the analyze command shows.
type objDumper struct {
	obj *Object
	out io.Writer
}

func (dump objDumper) dump() {
	fmt.Fprintf(dump.out, "# Program %v\n", dump.obj.ProgramName)

	fmt.Fprintf(dump.out, "# Quadruples (%v)\n", len(dump.obj.Quads))
	for i, q := range dump.obj.Quads {
		fmt.Fprintf(dump.out, "  %3d: %v\n", i, q)
	}

	dump.dumpConstants()
	dump.dumpFunctions()
}

func (dump objDumper) dumpConstants() {
	if len(dump.obj.Consts) == 0 {
		return
	}
	addrs := make([]int, 0, len(dump.obj.Consts))
	for addr := range dump.obj.Consts {
		addrs = append(addrs, addr)
	}
	sort.Ints(addrs)
	fmt.Fprintf(dump.out, "# Constants\n")
	for _, addr := range addrs {
		seg, _ := segmentOf(addr)
		fmt.Fprintf(dump.out, "  @%v %v (%v)\n", addr, dump.obj.Consts[addr], seg.valueType())
	}
}

func (dump objDumper) dumpFunctions() {
	infos := make([]*funcInfo, 0, len(dump.obj.Funcs.funcs))
	for _, fi := range dump.obj.Funcs.funcs {
		if !fi.isProgram {
			infos = append(infos, fi)
		}
	}
	if len(infos) == 0 {
		return
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].quadStart < infos[j].quadStart })
	fmt.Fprintf(dump.out, "# Functions\n")
	for _, fi := range infos {
		fmt.Fprintf(dump.out, "  %v %v(", fi.ret, fi.name)
		for i, p := range fi.params {
			if i > 0 {
				fmt.Fprint(dump.out, ", ")
			}
			fmt.Fprintf(dump.out, "%v: %v", p.Name, p.Type)
		}
		fmt.Fprintf(dump.out, ") @%v", fi.quadStart)
		if fi.returnAddr >= 0 {
			fmt.Fprintf(dump.out, " ret@%v", fi.returnAddr)
		}
		res := fi.res
		fmt.Fprintf(dump.out, " locals:%v/%v temps:%v/%v\n",
			res.LocalInt, res.LocalFloat, res.TempInt, res.TempFloat)
	}
}

// vmDumper prints a post-run memory snapshot: written globals, the constant
// pool as loaded, and the call-stack depth.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  ip: %v\n", dump.vm.ip)
	fmt.Fprintf(dump.out, "  call depth: %v\n", len(dump.vm.frames))

	dump.dumpPair("globals", &dump.vm.globals)
	dump.dumpPair("locals", &dump.vm.locals)
	dump.dumpPair("temps", &dump.vm.temps)
	dump.dumpPair("constants", &dump.vm.consts)
}

func (dump vmDumper) dumpPair(label string, pp *pagePair) {
	wrote := false
	header := func() {
		if !wrote {
			fmt.Fprintf(dump.out, "# %v\n", label)
			wrote = true
		}
	}
	for i := range pp {
		pp[i].written(func(addr int, v value) {
			header()
			fmt.Fprintf(dump.out, "  @%v %v\n", addr, v)
		})
	}
}
