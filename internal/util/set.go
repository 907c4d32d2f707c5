package util

// KeySet is a set of comparable values kept as the keys of a map. The zero
// value is a nil set that can be read from but not added to.
type KeySet[E comparable] map[E]bool

// NewKeySet creates an empty KeySet ready to be added to.
func NewKeySet[E comparable]() KeySet[E] {
	return KeySet[E]{}
}

func (s KeySet[E]) Has(value E) bool {
	return s[value]
}

func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) Len() int {
	return len(s)
}

func (s KeySet[E]) Empty() bool {
	return len(s) == 0
}

// Elements returns the elements of s as a slice. No particular order is
// guaranteed nor should it be relied on.
func (s KeySet[E]) Elements() []E {
	if s == nil {
		return nil
	}

	sl := make([]E, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}
