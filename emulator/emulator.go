// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator ties an assembled program to a nibble machine, and
// drives it at a clock rate.
package emulator

import (
	"io"
	"iter"

	"github.com/ezrec/fourbit/cpu"
)

// Emulator state. Machine + program listing.
type Emulator struct {
	Verbose      bool         // If set, enables verbose logging.
	*cpu.Machine              // Reference to the machine simulation.
	Program      *cpu.Program // Reference to the currently loaded program listing.

	variant cpu.Variant
}

// Option is a functional option for configuring the Emulator.
type Option func(*Emulator)

// WithVariant selects the machine variant.
func WithVariant(variant cpu.Variant) Option {
	return func(emu *Emulator) {
		emu.variant = variant
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(emu *Emulator) {
		emu.Verbose = verbose
	}
}

// WithProgram sets the initial program listing.
func WithProgram(prog *cpu.Program) Option {
	return func(emu *Emulator) {
		emu.Program = prog
	}
}

// NewEmulator creates a new emulator, by default of the large variant.
func NewEmulator(opts ...Option) (emu *Emulator, err error) {
	emu = &Emulator{
		Program: &cpu.Program{},
		variant: cpu.VARIANT_LARGE,
	}

	for _, opt := range opts {
		opt(emu)
	}

	emu.Machine, err = cpu.NewMachine(emu.variant)
	if err != nil {
		emu = nil
		return
	}

	emu.Machine.Verbose = emu.Verbose

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return emu.Machine.Defines()
}

// Assemble parses program text with the emulator defines, and makes it
// the current program.
func (emu *Emulator) Assemble(input io.Reader) (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	prog, err = asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the machine, and load the current program.
// The halt request raised by the machine reset is withdrawn, so that
// a following run proceeds.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = ErrNoProgram
		return
	}

	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset()

	err = emu.Machine.Load(emu.Program.Values())
	if err != nil {
		return
	}

	emu.Machine.ClearHalt()

	return
}

// Offset returns PC relative to the program origin.
func (emu *Emulator) Offset() int {
	return emu.Machine.PC - emu.Machine.Variant.Origin
}

// Code returns the instruction at PC.
func (emu *Emulator) Code() cpu.Code {
	m := emu.Machine
	pc := m.PC % len(m.Memory)
	return cpu.Code{
		Op:      m.Memory[pc],
		Operand: m.Memory[(pc+1)%len(m.Memory)],
	}
}

// LineNo returns the source line number for the instruction at PC.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Offset())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single step of the machine.
// If a halt was requested, the request is consumed, no step is taken,
// and done is returned. A machine diagnostic is returned as an
// *ErrRuntime; it is never fatal to the machine.
func (emu *Emulator) Tick() (done bool, err error) {
	m := emu.Machine

	if m.HaltRequested() {
		m.ClearHalt()
		done = true
		return
	}

	m.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := m.PC

	m.Step()

	if m.Fault != nil {
		err = &ErrRuntime{LineNo: lineno, PC: pc, Err: m.Fault}
	}

	return
}
