// Package cpu implements the nibble machine and its assembler.
//
// The machine has three 4-bit registers (A, B, C), a program counter (PC),
// a stack pointer (SP) into a memory of 4-bit cells, and a four entry flag
// vector: carry, negative, equal and error. Each instruction is a pair of
// cells, an opcode and an operand. Opcode 0x0 selects a secondary,
// operand-less instruction by its operand nibble.
//
// Programs are loaded at a fixed origin (0xf). Memory below the origin
// holds the stack and working storage.
//
// The assembler turns program text, one or more values or mnemonics per
// line, into a Program listing of nibbles, supporting labels, equates, and
// compile-time $(...) expressions.
package cpu
