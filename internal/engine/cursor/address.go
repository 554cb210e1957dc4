package cursor

import "strconv"

// Address is a position within an ordered sequence.
// The zero value is Gap(0), the gap before the first element.
type Address struct {
	index int
	on    bool
}

// Gap returns the address of the gap before element i.
func Gap(i int) Address {
	return Address{index: i}
}

// On returns the address on top of element i.
func On(i int) Address {
	return Address{index: i, on: true}
}

// IsGap reports whether the address is a gap between elements.
func (a Address) IsGap() bool {
	return !a.on
}

// Index returns the raw index: the element after a gap, or the element
// the address is on.
func (a Address) Index() int {
	return a.index
}

// Left returns the index of the element immediately to the left.
// For an On address that is the element itself.
func (a Address) Left() int {
	if a.on {
		return a.index
	}
	return a.index - 1
}

// Right returns the index of the element immediately to the right.
// For an On address that is the element itself.
func (a Address) Right() int {
	return a.index
}

// Next returns the address one full step to the right.
func (a Address) Next() Address {
	return Address{index: a.index + 1, on: a.on}
}

// Prev returns the address one full step to the left.
func (a Address) Prev() Address {
	return Address{index: a.index - 1, on: a.on}
}

// Half returns the half-integer form of the address: i-0.5 for Gap(i),
// i for On(i).
func (a Address) Half() float64 {
	if a.on {
		return float64(a.index)
	}
	return float64(a.index) - 0.5
}

// String returns the half-integer form, e.g. "-0.5" or "2".
func (a Address) String() string {
	return strconv.FormatFloat(a.Half(), 'f', -1, 64)
}
