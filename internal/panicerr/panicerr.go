// Package panicerr converts recovered panics into errors.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f, converting any panic into a returned error that carries
// the panic stack. The name is used to attribute the failure.
func Recover(name string, f func() error) (rerr error) {
	defer func() {
		if e := recover(); e != nil {
			rerr = panicError{name, e, debug.Stack()}
		}
	}()
	return f()
}

// Stack returns the recovered panic stack carried by err, if any.
func Stack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string {
	return fmt.Sprintf("%v paniced: %v", pe.name, pe.e)
}

func (pe panicError) Format(f fmt.State, c rune) {
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "%v paniced: %v\nPanic stack: %s", pe.name, pe.e, pe.stack)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}
