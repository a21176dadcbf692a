// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/fourbit/internal"
)

// Flag is an index into the flag vector.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_CARRY    = Flag(0) // car
	FLAG_NEGATIVE = Flag(1) // neg
	FLAG_EQUAL    = Flag(2) // equ
	FLAG_ERROR    = Flag(3) // err
	FLAG_COUNT    = 4
)

var _cpu_defines = map[string]string{
	"FLAG_CARRY":    fmt.Sprintf("%d", FLAG_CARRY),
	"FLAG_NEGATIVE": fmt.Sprintf("%d", FLAG_NEGATIVE),
	"FLAG_EQUAL":    fmt.Sprintf("%d", FLAG_EQUAL),
	"FLAG_ERROR":    fmt.Sprintf("%d", FLAG_ERROR),
}

// Machine is the simulation context for the nibble machine.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Variant Variant // Architecture parameters.

	Memory  []uint8           // Memory cells, each a nibble.
	A, B, C uint8             // Register bank.
	PC      int               // Program counter.
	SP      int               // Stack pointer.
	F       [FLAG_COUNT]uint8 // Flag vector.

	Steps int   // Steps since reset.
	Fault error // Diagnostic of the most recent step, if any.

	haltRequest bool
}

// NewMachine creates a new machine of the given variant, in reset state.
func NewMachine(variant Variant) (m *Machine, err error) {
	err = variant.Validate()
	if err != nil {
		return
	}

	m = &Machine{
		Variant: variant,
		Memory:  make([]uint8, variant.Capacity),
	}

	m.Reset()

	return
}

// Defines for the machine.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines), m.Variant.Defines())
}

// Reset the machine state.
// - Clears memory, registers, flags and the stack pointer.
// - Points PC at the program origin.
// - Zeros the step counter.
// - Raises the halt request for any run driver.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("cpu: reset")
	}

	clear(m.Memory)
	clear(m.F[:])
	m.A, m.B, m.C = 0, 0, 0
	m.PC = m.Variant.Origin
	m.SP = 0
	m.Steps = 0
	m.Fault = nil

	m.haltRequest = true
}

// RequestHalt asks the run driver to stop before the next step.
func (m *Machine) RequestHalt() {
	m.haltRequest = true
}

// HaltRequested returns true if a halt is pending.
func (m *Machine) HaltRequested() bool {
	return m.haltRequest
}

// ClearHalt withdraws a pending halt request.
func (m *Machine) ClearHalt() {
	m.haltRequest = false
}

// Load writes values into memory from the program origin forward.
// Nothing is written if the program does not fit, or holds a value
// wider than a nibble.
func (m *Machine) Load(values []uint8) (err error) {
	available := m.Variant.Available()
	if len(values) > available {
		err = &ErrCapacity{Size: len(values), Available: available}
		return
	}

	for _, value := range values {
		if value > NIBBLE_MASK {
			err = ErrNibble(value)
			return
		}
	}

	copy(m.Memory[m.Variant.Origin:], values)

	if m.Verbose {
		log.Printf("cpu: loaded %v cells at %#02x", len(values), m.Variant.Origin)
	}

	return
}

// wrap folds an address into memory.
func (m *Machine) wrap(addr int) int {
	addr %= len(m.Memory)
	if addr < 0 {
		addr += len(m.Memory)
	}
	return addr
}

// Fetch reads the instruction pair at PC, advancing PC past it.
func (m *Machine) Fetch() (code Code) {
	m.PC = m.wrap(m.PC)
	code.Op = m.Memory[m.PC]
	m.PC = m.wrap(m.PC + 1)
	code.Operand = m.Memory[m.PC] & NIBBLE_MASK
	m.PC = m.wrap(m.PC + 1)

	return
}

// Step executes a single instruction pair.
// Anomalies are reported through the flags and Fault; Step never fails.
func (m *Machine) Step() {
	m.PC = m.wrap(m.PC)
	m.SP = m.wrap(m.SP)
	m.Fault = nil

	pc := m.PC
	code := m.Fetch()

	if m.Verbose {
		log.Printf("%02x: %v", pc, code)
	}

	m.Execute(code)
	m.Steps++

	if m.Verbose && m.Fault != nil {
		log.Printf("%02x: %v", pc, m.Fault)
	}
}

// Execute executes a single decoded instruction.
func (m *Machine) Execute(code Code) {
	value := code.Operand & NIBBLE_MASK

	switch code.Primary() {
	case OP_SYS:
		m.system(code)
	case OP_LDA:
		m.A = m.Memory[value] & NIBBLE_MASK
	case OP_STA:
		m.Memory[value] = m.A & NIBBLE_MASK
	case OP_CMP, OP_CMPI:
		m.setFlag(FLAG_EQUAL, m.A == value)
	case OP_ADD:
		m.add(m.Memory[value] & NIBBLE_MASK)
	case OP_SUB, OP_SUBI:
		m.sub(value)
	case OP_AND:
		m.A &= value
	case OP_XOR:
		m.A ^= value
	case OP_OR:
		m.A |= value
	case OP_NOT:
		m.A = ^m.A & NIBBLE_MASK
	case OP_LDI:
		m.A = value
	case OP_JMP:
		m.PC = m.wrap(int(value) + m.Variant.Origin)
	case OP_LSP:
		m.SP = m.wrap(int(value))
	case OP_ADDI:
		m.add(value)
	default:
		m.Fault = ErrOpcode(code)
	}
}

// system executes the no-operand secondary instructions.
func (m *Machine) system(code Code) {
	switch code.Secondary() {
	case SYS_NOP:
		// pass
	case SYS_PUSH:
		m.Push(m.A)
	case SYS_POP:
		value, ok := m.Pop()
		if ok {
			m.A = value
		}
	case SYS_PUSHPC:
		m.PushAddress(m.PC)
	case SYS_POPPC:
		addr, ok := m.PopAddress()
		if ok {
			m.PC = m.wrap(addr)
		}
	case SYS_SWAPAB:
		m.A, m.B = m.B, m.A
	case SYS_SWAPBC:
		m.B, m.C = m.C, m.B
	case SYS_SKIPC:
		m.skipIf(FLAG_CARRY)
	case SYS_SKIPN:
		m.skipIf(FLAG_NEGATIVE)
	case SYS_SKIPE:
		m.skipIf(FLAG_EQUAL)
	case SYS_ADDB:
		if !m.Variant.ExtendedAlu {
			m.Fault = ErrOperand(code)
			return
		}
		m.add(m.B)
	case SYS_ADDC:
		if !m.Variant.ExtendedAlu {
			m.Fault = ErrOperand(code)
			return
		}
		m.add(m.C)
	default:
		m.Fault = ErrOperand(code)
	}
}

// add sums into A. Carry is set past 15, and the result is reduced
// modulo 15, not 16.
func (m *Machine) add(value uint8) {
	sum := int(m.A) + int(value)
	m.setFlag(FLAG_CARRY, sum > NIBBLE_MASK)
	m.A = uint8(sum % NIBBLE_MASK)
}

// sub subtracts from A. Carry and negative are both set on a borrow,
// and the result is reduced modulo 15 into [0, 14].
func (m *Machine) sub(value uint8) {
	diff := int(m.A) - int(value)
	m.setFlag(FLAG_CARRY, diff < 0)
	m.setFlag(FLAG_NEGATIVE, diff < 0)
	diff %= NIBBLE_MASK
	if diff < 0 {
		diff += NIBBLE_MASK
	}
	m.A = uint8(diff)
}

// skipIf skips the next instruction pair if the flag is set.
func (m *Machine) skipIf(flag Flag) {
	if m.F[flag] == 1 {
		m.PC = m.wrap(m.PC + 2)
	}
}

func (m *Machine) setFlag(flag Flag, value bool) {
	m.F[flag] = 0
	if value {
		m.F[flag] = 1
	}
}

// Flag returns true if the flag is set.
func (m *Machine) Flag(flag Flag) bool {
	return m.F[flag] == 1
}

// State is a point-in-time copy of the machine, for presentation.
type State struct {
	A, B, C     uint8
	PC, SP      int
	F           [FLAG_COUNT]uint8
	Memory      []uint8
	Steps       int
	Fault       error
	HaltRequest bool
}

// Snapshot copies the observable machine state.
func (m *Machine) Snapshot() State {
	return State{
		A:           m.A,
		B:           m.B,
		C:           m.C,
		PC:          m.PC,
		SP:          m.SP,
		F:           m.F,
		Memory:      append([]uint8(nil), m.Memory...),
		Steps:       m.Steps,
		Fault:       m.Fault,
		HaltRequest: m.haltRequest,
	}
}

// Flag returns true if the flag was set.
func (st State) Flag(flag Flag) bool {
	return st.F[flag] == 1
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{
		"pc", "sp",
		"a", "b", "c",
		"flags",
		"stack",
		"fault",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", m.PC)
		case "sp":
			strval = fmt.Sprintf("%02X", m.SP)
		case "a":
			strval = fmt.Sprintf("%X", m.A)
		case "b":
			strval = fmt.Sprintf("%X", m.B)
		case "c":
			strval = fmt.Sprintf("%X", m.C)
		case "flags":
			for flag := FLAG_CARRY; flag < FLAG_COUNT; flag++ {
				if m.Flag(flag) {
					strval += flag.String() + " "
				} else {
					strval += "--- "
				}
			}
		case "stack":
			val, ok := m.Peek()
			if ok {
				strval = fmt.Sprintf("%X (%d deep)", val, m.SP)
			} else {
				strval = "-"
			}
		case "fault":
			strval = "-"
			if m.Fault != nil {
				strval = m.Fault.Error()
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
