package cpu

import (
	"fmt"
)

// NIBBLE_MASK masks a value to the machine word size.
const NIBBLE_MASK = 0xf

// Primary is the first nibble of an instruction pair.
type Primary int

//go:generate go tool stringer -linecomment -type=Primary
const (
	OP_SYS  = Primary(0x0) // sys
	OP_LDA  = Primary(0x1) // lda
	OP_STA  = Primary(0x2) // sta
	OP_CMP  = Primary(0x3) // cmp
	OP_ADD  = Primary(0x4) // add
	OP_SUB  = Primary(0x5) // sub
	OP_AND  = Primary(0x6) // and
	OP_XOR  = Primary(0x7) // xor
	OP_OR   = Primary(0x8) // or
	OP_NOT  = Primary(0x9) // not
	OP_LDI  = Primary(0xa) // ldi
	OP_JMP  = Primary(0xb) // jmp
	OP_LSP  = Primary(0xc) // lsp
	OP_ADDI = Primary(0xd) // addi
	OP_SUBI = Primary(0xe) // subi
	OP_CMPI = Primary(0xf) // cmpi
)

// Secondary is the operand nibble of an OP_SYS instruction.
type Secondary int

//go:generate go tool stringer -linecomment -type=Secondary
const (
	SYS_NOP    = Secondary(0x0) // nop
	SYS_PUSH   = Secondary(0x1) // push
	SYS_POP    = Secondary(0x2) // pop
	SYS_PUSHPC = Secondary(0x3) // pushpc
	SYS_POPPC  = Secondary(0x4) // poppc
	SYS_SWAPAB = Secondary(0x5) // swapab
	SYS_SWAPBC = Secondary(0x6) // swapbc
	SYS_SKIPC  = Secondary(0x7) // skipc
	SYS_SKIPN  = Secondary(0x8) // skipn
	SYS_SKIPE  = Secondary(0x9) // skipe
	SYS_ADDB   = Secondary(0xa) // addb
	SYS_ADDC   = Secondary(0xb) // addc
)

// Code is a single instruction pair as fetched from memory.
type Code struct {
	Op      uint8 // Primary opcode nibble.
	Operand uint8 // Operand nibble, or the secondary opcode under OP_SYS.
}

// MakeCode creates a primary instruction with an operand.
func MakeCode(op Primary, operand uint8) Code {
	return Code{Op: uint8(op), Operand: operand & NIBBLE_MASK}
}

// MakeCodeSys creates a no-operand secondary instruction.
func MakeCodeSys(sec Secondary) Code {
	return Code{Op: uint8(OP_SYS), Operand: uint8(sec)}
}

// Primary returns the primary opcode.
func (code Code) Primary() Primary {
	return Primary(code.Op)
}

// Secondary returns the secondary opcode; only meaningful under OP_SYS.
func (code Code) Secondary() Secondary {
	return Secondary(code.Operand)
}

// Values returns the two memory cells of the instruction.
func (code Code) Values() []uint8 {
	return []uint8{code.Op, code.Operand}
}

// Valid returns true if the instruction decodes to a known operation
// on a machine with or without the extended ALU secondaries.
func (code Code) Valid(extended bool) bool {
	if code.Op > NIBBLE_MASK {
		return false
	}
	if code.Primary() != OP_SYS {
		return true
	}

	sec := code.Secondary()
	if sec <= SYS_SKIPE {
		return true
	}

	return extended && (sec == SYS_ADDB || sec == SYS_ADDC)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	op := code.Primary()

	switch {
	case code.Op > NIBBLE_MASK:
		return fmt.Sprintf("?%#x %#x", code.Op, code.Operand)
	case op == OP_SYS:
		sec := code.Secondary()
		if sec > SYS_ADDC {
			return fmt.Sprintf("%v %#x", op, code.Operand)
		}
		return sec.String()
	case op == OP_NOT && code.Operand == 0:
		return op.String()
	}

	return fmt.Sprintf("%v %#x", op, code.Operand)
}

// primaryMap maps mnemonics taking one operand to their opcode.
var primaryMap = map[string]Primary{
	OP_LDA.String():  OP_LDA,
	OP_STA.String():  OP_STA,
	OP_CMP.String():  OP_CMP,
	OP_ADD.String():  OP_ADD,
	OP_SUB.String():  OP_SUB,
	OP_AND.String():  OP_AND,
	OP_XOR.String():  OP_XOR,
	OP_OR.String():   OP_OR,
	OP_LDI.String():  OP_LDI,
	OP_JMP.String():  OP_JMP,
	OP_LSP.String():  OP_LSP,
	OP_ADDI.String(): OP_ADDI,
	OP_SUBI.String(): OP_SUBI,
	OP_CMPI.String(): OP_CMPI,
}

// secondaryMap maps mnemonics taking no operand to their instruction.
var secondaryMap = map[string]Code{
	OP_NOT.String(): MakeCode(OP_NOT, 0),
}

func init() {
	for sec := SYS_NOP; sec <= SYS_ADDC; sec++ {
		secondaryMap[sec.String()] = MakeCodeSys(sec)
	}
}
