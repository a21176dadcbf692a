package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated values.
type Opcode struct {
	LineNo    int      // Source line number.
	Offset    int      // Cell offset from the program origin.
	Words     []string // Source words, after equate expansion.
	Values    []uint8  // Generated nibbles.
	LinkLabel string   // Jump label to resolve into the last value.
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug locates the opcode that generated the cell at an origin-relative offset.
func (prog *Program) Debug(offset int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if offset >= op.Offset && offset < op.Offset+len(op.Values) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  offset - op.Offset,
			}
			break
		}
	}

	return
}

// Len returns the program size, in cells.
func (prog *Program) Len() (size int) {
	for _, op := range prog.Opcodes {
		size += len(op.Values)
	}

	return
}

// Values returns the program as a flat list of cells, ready to load.
func (prog *Program) Values() (values []uint8) {
	for _, value := range prog.Nibbles() {
		values = append(values, value)
	}

	return
}

// Nibbles iterates over the program cells and their offsets.
func (prog *Program) Nibbles() iter.Seq2[int, uint8] {
	return func(yield func(offset int, value uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Values {
				if !yield(op.Offset+n, value) {
					return
				}
			}
		}
	}
}

// Codes iterates over the program as instruction pairs. A trailing
// odd cell is paired with a zero operand.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(offset int, code Code) bool) {
		values := prog.Values()
		for n := 0; n < len(values); n += 2 {
			code := Code{Op: values[n]}
			if n+1 < len(values) {
				code.Operand = values[n+1]
			}
			if !yield(n, code) {
				return
			}
		}
	}
}
