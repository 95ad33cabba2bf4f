package model

import "sort"

// AddressSet is a set of account addresses.
type AddressSet map[string]struct{}

// NewAddressSet builds a set from the given addresses, ignoring empty strings.
func NewAddressSet(addresses ...string) AddressSet {
	s := make(AddressSet, len(addresses))
	s.Add(addresses...)
	return s
}

// Add inserts addresses into the set.
func (s AddressSet) Add(addresses ...string) {
	for _, a := range addresses {
		if a == "" {
			continue
		}
		s[a] = struct{}{}
	}
}

// Contains reports whether address is in the set. A nil set contains nothing.
func (s AddressSet) Contains(address string) bool {
	_, ok := s[address]
	return ok
}

// Union returns a new set holding members of s and every other set.
func (s AddressSet) Union(others ...AddressSet) AddressSet {
	out := make(AddressSet, len(s))
	for a := range s {
		out[a] = struct{}{}
	}
	for _, o := range others {
		for a := range o {
			out[a] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in ascending order.
func (s AddressSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
