package stats

import (
	"sort"
)

// Count is one value and how many times it was seen
type Count[K comparable] struct {
	Value K   `json:"value"`
	Count int `json:"count"`
}

// Counter tallies values and remembers the order each was first seen in.
// Ties between equal counts always resolve to the earliest value.
type Counter[K comparable] struct {
	index  map[K]int
	counts []Count[K]
	total  int
}

// NewCounter creates an empty counter
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{index: make(map[K]int)}
}

// Add records one occurrence of v
func (c *Counter[K]) Add(v K) {
	c.total++
	if i, ok := c.index[v]; ok {
		c.counts[i].Count++
		return
	}
	c.index[v] = len(c.counts)
	c.counts = append(c.counts, Count[K]{Value: v, Count: 1})
}

// Len returns the number of distinct values
func (c *Counter[K]) Len() int {
	return len(c.counts)
}

// Total returns the number of values added
func (c *Counter[K]) Total() int {
	return c.total
}

// Mode returns the most frequent value.
// ok is false when nothing has been added.
func (c *Counter[K]) Mode() (value K, count int, ok bool) {
	for i, entry := range c.counts {
		if i == 0 || entry.Count > count {
			value, count = entry.Value, entry.Count
		}
	}
	return value, count, len(c.counts) > 0
}

// Counts returns every value ordered by descending count, first seen first on ties
func (c *Counter[K]) Counts() []Count[K] {
	out := make([]Count[K], len(c.counts))
	copy(out, c.counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
