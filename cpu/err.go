package cpu

import (
	"errors"

	"github.com/ezrec/fourbit/translate"
)

var f = translate.From

var (
	// Machine diagnostics
	ErrStackOverflow    = errors.New(f("stack overflow"))
	ErrStackUnderflow   = errors.New(f("stack underflow"))
	ErrInvalidOperand   = errors.New(f("invalid operand"))
	ErrInvalidOpcode    = errors.New(f("invalid opcode"))
	ErrCapacityExceeded = errors.New(f("capacity exceeded"))

	// Variant errors
	ErrVariantCapacity = errors.New(f("variant capacity invalid"))
	ErrVariantOrigin   = errors.New(f("variant origin invalid"))
	ErrVariantStack    = errors.New(f("variant stack limit invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))
)

// ErrOperand is the diagnostic for an OP_SYS instruction with an
// unrecognized secondary operand.
type ErrOperand Code

func (eo ErrOperand) Error() string {
	return f("invalid operand %#x for %v", eo.Operand, OP_SYS)
}

func (eo ErrOperand) Is(err error) bool {
	return err == ErrInvalidOperand
}

// ErrOpcode is the diagnostic for a primary opcode outside of the table.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("invalid opcode %#x", eo.Op)
}

func (eo ErrOpcode) Is(err error) bool {
	return err == ErrInvalidOpcode
}

// ErrCapacity reports a program that does not fit between the origin
// and the end of memory.
type ErrCapacity struct {
	Size      int // Program size in cells.
	Available int // Cells available from the origin.
}

func (err *ErrCapacity) Error() string {
	return f("program of %v cells exceeds %v cells available", err.Size, err.Available)
}

func (err *ErrCapacity) Unwrap() error {
	return ErrCapacityExceeded
}

// ErrNibble reports a value that does not fit in a memory cell.
type ErrNibble int64

func (err ErrNibble) Error() string {
	return f("%v is not a nibble", int64(err))
}

// ErrVariantUnknown reports an unknown variant name.
type ErrVariantUnknown string

func (err ErrVariantUnknown) Error() string {
	return f("variant '%v' unknown", string(err))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabelRange reports a label too far from the origin to be a jump target.
type ErrLabelRange struct {
	Label  string
	Offset int
}

func (err ErrLabelRange) Error() string {
	return f("label %v at offset %v is out of jump range", err.Label, err.Offset)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrMnemonic reports a word that is neither a value nor an instruction.
type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("'%v' is not an instruction or value", string(err))
}
