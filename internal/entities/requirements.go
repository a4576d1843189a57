package entities

import "sort"

// Requirements maps a root creature to the DNA still needed from it
type Requirements map[string]int

// Add accumulates amount for name
func (r Requirements) Add(name string, amount int) {
	r[name] += amount
}

// Merge sums other into r key-wise
func (r Requirements) Merge(other Requirements) {
	for name, amount := range other {
		r[name] += amount
	}
}

// Get returns the amount for name, zero if absent
func (r Requirements) Get(name string) int {
	return r[name]
}

// Positive returns a copy without zero or negative entries
func (r Requirements) Positive() Requirements {
	out := make(Requirements, len(r))
	for name, amount := range r {
		if amount > 0 {
			out[name] = amount
		}
	}
	return out
}

// Names returns the keys in sorted order
func (r Requirements) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total sums every entry
func (r Requirements) Total() int {
	total := 0
	for _, amount := range r {
		total += amount
	}
	return total
}

// Wishlist returns names de-duplicated and sorted, dropping blanks.
// Sorted order makes stateful passes reproducible.
func Wishlist(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
