package nav

import "slices"

// Cycle is an ordered, wrap-around list of names filtered to what the
// current collection offers. It is rebuilt lazily after Invalidate.
type Cycle struct {
	configured []string
	names      []string
	valid      bool
}

// NewCycle creates a cycle over the configured names.
func NewCycle(configured []string) *Cycle {
	return &Cycle{configured: configured}
}

// Invalidate forces a rebuild on the next use.
func (c *Cycle) Invalidate() {
	c.valid = false
}

// Names returns the configured names that appear in available. A cycle
// with nothing configured uses available as is. available is only called
// when the cycle needs rebuilding.
func (c *Cycle) Names(available func() []string) []string {
	if c.valid {
		return c.names
	}
	all := available()
	if len(c.configured) == 0 {
		c.names = slices.Clone(all)
	} else {
		c.names = nil
		for _, n := range c.configured {
			if slices.Contains(all, n) {
				c.names = append(c.names, n)
			}
		}
	}
	c.valid = true
	return c.names
}

// Neighbor returns the name dir places after current, skipping names in skip.
// A current name not in the list steps from the start. It returns "" when
// no other name qualifies.
func Neighbor(names []string, current string, dir int, skip []string) string {
	n := len(names)
	if n == 0 {
		return ""
	}
	start := slices.Index(names, current)
	if start < 0 {
		if dir > 0 {
			start = n - 1
		} else {
			start = 0
		}
	}
	for i := 1; i <= n; i++ {
		cand := names[((start+dir*i)%n+n)%n]
		if cand == current || slices.Contains(skip, cand) {
			continue
		}
		return cand
	}
	return ""
}
