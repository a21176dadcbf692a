package cpu

// The stack lives in memory, growing upward from address 0. SP is the
// index of the next free cell, so the stack holds Memory[0:SP].

// Push stores a value at SP and advances SP.
// At the variant stack limit it sets the error flag and leaves memory
// and SP unchanged.
func (m *Machine) Push(value uint8) (ok bool) {
	if m.StackFull() {
		m.F[FLAG_ERROR] = 1
		m.Fault = ErrStackOverflow
		return
	}

	m.Memory[m.SP] = value & NIBBLE_MASK
	m.SP++

	return true
}

// Pop retreats SP and returns the value stored there.
// On an empty stack it sets the error flag and leaves SP unchanged.
func (m *Machine) Pop() (value uint8, ok bool) {
	if m.StackEmpty() {
		m.F[FLAG_ERROR] = 1
		m.Fault = ErrStackUnderflow
		return
	}

	m.SP--
	value = m.Memory[m.SP]

	return value, true
}

// PushAddress stores an address as two cells, high nibble first.
// If both cells do not fit below the stack limit, it sets the error flag
// and stores nothing.
func (m *Machine) PushAddress(addr int) (ok bool) {
	if m.SP+2 > m.Variant.StackLimit {
		m.F[FLAG_ERROR] = 1
		m.Fault = ErrStackOverflow
		return
	}

	m.Memory[m.SP] = uint8(addr>>4) & NIBBLE_MASK
	m.Memory[m.SP+1] = uint8(addr) & NIBBLE_MASK
	m.SP += 2

	return true
}

// PopAddress retreats SP past an address stored by PushAddress.
// With fewer than two stacked cells it sets the error flag and leaves SP
// unchanged.
func (m *Machine) PopAddress() (addr int, ok bool) {
	if m.SP < 2 {
		m.F[FLAG_ERROR] = 1
		m.Fault = ErrStackUnderflow
		return
	}

	m.SP -= 2
	addr = int(m.Memory[m.SP])<<4 | int(m.Memory[m.SP+1])

	return addr, true
}

// Peek returns the value on top of the stack without changing it.
func (m *Machine) Peek() (value uint8, ok bool) {
	if m.StackEmpty() {
		return
	}

	return m.Memory[m.SP-1], true
}

// StackEmpty is true when a pop would underflow.
func (m *Machine) StackEmpty() bool {
	return m.SP == 0
}

// StackFull is true when a push would overflow.
func (m *Machine) StackFull() bool {
	return m.SP >= m.Variant.StackLimit
}

// Stack returns a copy of the stacked values, bottom first.
func (m *Machine) Stack() (values []uint8) {
	if m.StackEmpty() {
		return
	}

	return append(values, m.Memory[:m.SP]...)
}
