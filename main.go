/* Package main: a compiler and virtual machine for Patito.

Patito is a tiny imperative language: int and float scalars, global and
local variables, void and value-returning functions (recursion included),
if/else, while/do, print, and expressions over + - * / with the relational
operators < > !=.

Source text compiles to an object program (a linear table of four-address
quadruples, a constant pool, and a function directory) which the VM
executes against segmented virtual memory with an activation-record stack.
See doc.go for the memory layout and the instruction set.

Usage:

	patito [flags] compile <src> [out]   compile to an object file
	patito [flags] run <obj>             execute an object file
	patito [flags] execute <src>         compile and run in one step
	patito [flags] <src>                 analyze: compile and list quads

Flags -trace and -dump default from the PATITO_TRACE and PATITO_DUMP
environment variables.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gitlab.com/efronlicht/enve"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		trace   bool
		dump    bool
		timeout time.Duration
	)
	flag.BoolVar(&trace, "trace", enve.BoolOr("PATITO_TRACE", false), "enable trace logging")
	flag.BoolVar(&dump, "dump", enve.BoolOr("PATITO_DUMP", false), "print a memory dump after execution")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.Parse()

	log := setupLogger(trace)
	defer log.Sync()

	app := cli{
		log:     log.Sugar(),
		trace:   trace,
		dump:    dump,
		timeout: timeout,
	}
	if err := app.run(flag.Args()); err != nil {
		app.log.Errorf("%v", err)
		os.Exit(1)
	}
}

func setupLogger(trace bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	level := zapcore.InfoLevel
	if trace {
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	))
}

type cli struct {
	log     *zap.SugaredLogger
	trace   bool
	dump    bool
	timeout time.Duration
}

func (c cli) run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: patito [flags] compile|run|execute|analyze ...")
	}
	switch args[0] {
	case "compile":
		if len(args) < 2 {
			return fmt.Errorf("usage: patito compile <src> [out]")
		}
		out := strings.TrimSuffix(args[1], ".pat") + ".obj"
		if len(args) > 2 {
			out = args[2]
		}
		return c.compile(args[1], out)
	case "run":
		if len(args) < 2 {
			return fmt.Errorf("usage: patito run <obj>")
		}
		return c.execObject(args[1])
	case "execute":
		if len(args) < 2 {
			return fmt.Errorf("usage: patito execute <src>")
		}
		obj, err := c.compileSource(args[1])
		if err != nil {
			return err
		}
		return c.execute(obj)
	case "analyze":
		if len(args) < 2 {
			return fmt.Errorf("usage: patito analyze <src>")
		}
		return c.analyze(args[1])
	}
	return c.analyze(args[0])
}

func (c cli) compileSource(path string) (*Object, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := Compile(string(src))
	if err != nil {
		if ds, ok := err.(diagnostics); ok {
			for _, d := range ds {
				fmt.Fprintf(os.Stderr, "error: %v\n", d)
			}
			return nil, fmt.Errorf("%v: %v semantic errors", path, len(ds))
		}
		return nil, fmt.Errorf("%v:%v", path, err)
	}
	c.log.Debugf("compiled %v: %v quadruples", path, len(obj.Quads))
	return obj, nil
}

func (c cli) compile(srcPath, outPath string) error {
	obj, err := c.compileSource(srcPath)
	if err != nil {
		return err
	}
	p, err := obj.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, p, 0644); err != nil {
		return err
	}
	c.log.Infof("wrote %v", outPath)
	return nil
}

func (c cli) execObject(path string) error {
	p, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	obj, err := DecodeObject(p)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return c.execute(obj)
}

func (c cli) execute(obj *Object) error {
	opts := []VMOption{WithOutput(os.Stdout)}
	if c.trace {
		opts = append(opts, WithLogf(c.log.Debugf))
	}
	vm := New(obj, opts...)

	if c.dump {
		defer vmDumper{vm: vm, out: os.Stderr}.dump()
	}

	ctx := context.Background()
	if c.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return vm.Run(ctx)
}

func (c cli) analyze(path string) error {
	obj, err := c.compileSource(path)
	if err != nil {
		return err
	}
	objDumper{obj: obj, out: os.Stdout}.dump()
	return nil
}
