package emulator

import (
	"errors"

	"github.com/ezrec/fourbit/translate"
)

var f = translate.From

var (
	ErrNoProgram = errors.New(f("no program"))
)

// ErrRuntime indicates the location of a runtime diagnostic.
type ErrRuntime struct {
	LineNo int // Source line, or 0 if PC is outside the program.
	PC     int // Address of the instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d pc %#02x %v", err.LineNo, err.PC, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
