package emitter

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// constPool interns string constants by content. Each distinct string gets a
// stable data label derived from its hash; two strings whose hashes collide
// chain onto the same bucket and the later one gets a numeric suffix.
type constPool struct {
	buckets map[uint64][]poolEntry
	order   []poolEntry // insertion order, used for output
}

type poolEntry struct {
	label string
	data  string
}

func newConstPool() *constPool {
	return &constPool{buckets: make(map[uint64][]poolEntry)}
}

// Insert adds s if it is not present and returns its label either way.
func (c *constPool) Insert(s string) string {
	h := xxhash.Sum64String(s)
	chain := c.buckets[h]
	for _, e := range chain {
		if e.data == s {
			return e.label
		}
	}

	label := fmt.Sprintf("$str_%016x", h)
	if len(chain) > 0 {
		label = fmt.Sprintf("%s_%d", label, len(chain))
	}
	entry := poolEntry{label: label, data: s}
	c.buckets[h] = append(chain, entry)
	c.order = append(c.order, entry)
	return label
}
