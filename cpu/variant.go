package cpu

import (
	"fmt"
	"iter"
	"maps"
)

const (
	ORIGIN        = 0xf // Offset where loaded programs begin.
	STACK_LIMIT   = 0xe // Stack pointer value at which a push fails.
	ADDRESS_LIMIT = 256 // Largest memory addressable by PC and SP.
)

// Variant is the set of architecture parameters for a machine.
type Variant struct {
	Name        string // Variant name.
	Capacity    int    // Memory size, in cells.
	StackLimit  int    // Stack pointer value at which a push fails.
	Origin      int    // Offset where loaded programs begin.
	ExtendedAlu bool   // Enables the addb and addc secondaries.
}

var (
	// VARIANT_SMALL is the 32 cell machine.
	VARIANT_SMALL = Variant{
		Name:       "small",
		Capacity:   32,
		StackLimit: STACK_LIMIT,
		Origin:     ORIGIN,
	}

	// VARIANT_LARGE is the 256 cell machine, with the low memory below
	// the origin available as working storage.
	VARIANT_LARGE = Variant{
		Name:        "large",
		Capacity:    ADDRESS_LIMIT,
		StackLimit:  STACK_LIMIT,
		Origin:      ORIGIN,
		ExtendedAlu: true,
	}
)

var _variants = map[string]Variant{
	VARIANT_SMALL.Name: VARIANT_SMALL,
	VARIANT_LARGE.Name: VARIANT_LARGE,
}

// LookupVariant finds a predefined variant by name.
func LookupVariant(name string) (variant Variant, err error) {
	variant, ok := _variants[name]
	if !ok {
		err = ErrVariantUnknown(name)
	}

	return
}

// Variants returns the predefined variants, by name.
func Variants() iter.Seq2[string, Variant] {
	return maps.All(_variants)
}

// Validate checks the variant parameters against the instruction set.
//   - The origin must be reachable as a jump base from a nibble.
//   - A one-instruction program must fit after the origin.
//   - Memory must be addressable by an 8-bit PC.
//   - The stack must sit below the origin.
func (v Variant) Validate() (err error) {
	switch {
	case v.Origin < 0 || v.Origin > NIBBLE_MASK:
		err = ErrVariantOrigin
	case v.Capacity < v.Origin+2 || v.Capacity > ADDRESS_LIMIT:
		err = ErrVariantCapacity
	case v.StackLimit < 0 || v.StackLimit > v.Origin:
		err = ErrVariantStack
	}

	return
}

// Available returns the number of cells a program may occupy.
func (v Variant) Available() int {
	return v.Capacity - v.Origin
}

// Defines for the variant.
func (v Variant) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"CAPACITY":    fmt.Sprintf("%d", v.Capacity),
		"ORIGIN":      fmt.Sprintf("%d", v.Origin),
		"STACK_LIMIT": fmt.Sprintf("%d", v.StackLimit),
	})
}
