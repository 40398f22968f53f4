package stats

import "sort"

// Distribution counts occurrences of string keys (cards seen, winning hand
// types) and reports them in descending frequency order.
type Distribution struct {
	counts map[string]int
	total  int
}

// DistributionEntry is one key with its count.
type DistributionEntry struct {
	Key   string
	Count int
}

// NewDistribution returns an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{counts: make(map[string]int)}
}

// Add counts one occurrence of key.
func (d *Distribution) Add(key string) {
	d.AddN(key, 1)
}

// AddN counts n occurrences of key.
func (d *Distribution) AddN(key string, n int) {
	d.counts[key] += n
	d.total += n
}

// Count returns the occurrences recorded for key.
func (d *Distribution) Count(key string) int {
	return d.counts[key]
}

// Total returns the number of occurrences across all keys.
func (d *Distribution) Total() int {
	return d.total
}

// Merge folds another distribution into this one.
func (d *Distribution) Merge(other *Distribution) {
	for key, n := range other.counts {
		d.AddN(key, n)
	}
}

// Entries returns all keys sorted by descending count, ties broken by key
// so output is deterministic.
func (d *Distribution) Entries() []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(d.counts))
	for key, n := range d.counts {
		entries = append(entries, DistributionEntry{Key: key, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Top returns the n most frequent entries.
func (d *Distribution) Top(n int) []DistributionEntry {
	entries := d.Entries()
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
