package common

import "strconv"

// NewStem creates a new Stem instance with the provided stem and namespace.
// The nil namespace is treated as a free namespace, meaning all names are available.
func NewStem(stem string, namespace map[string]struct{}) *Stem {
	return &Stem{
		taken: namespace,
		stem:  stem,
	}
}

// Stem hands out identifiers derived from one stem that do not collide with
// the names already taken in its namespace.
type Stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

// Next returns the next free name of the form stem1, stem2, ...
func (s *Stem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}

// Namespace tracks identifiers declared in one scope of generated code.
type Namespace map[string]struct{}

// Claim returns name when it is free and a numbered variant of it otherwise.
// The returned name is marked as taken.
func (ns Namespace) Claim(name string) string {
	if _, ok := ns[name]; !ok {
		ns[name] = struct{}{}
		return name
	}

	return NewStem(name, ns).Next()
}
