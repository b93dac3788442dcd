package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/patitolang/patito/internal/flushio"
)

// core bundles the output and logging shared by anything that writes
// program output: a flushable writer, owned closers, and the halt
// discipline (flush what we can, then panic with a haltError for the API
// boundary to recover).
type core struct {
	logging
	out     flushio.WriteFlusher
	closers []io.Closer
}

func (c *core) Close() (err error) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if cerr := c.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (c *core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if c.out != nil {
			if ferr := c.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		c.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (c *core) haltif(err error) {
	if err != nil {
		c.halt(err)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
