package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGini_Equal(t *testing.T) {
	assert.InDelta(t, 0, Gini([]int{1000, 1000, 1000, 1000}), 1e-9)
}

func TestGini_Concentrated(t *testing.T) {
	// One player holds nearly everything: gini approaches (n-1)/n.
	g := Gini([]int{0, 0, 0, 10000})
	assert.InDelta(t, 0.75, g, 1e-9)
}

func TestGini_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Gini(nil))
	assert.Equal(t, 0.0, Gini([]int{0, 0}))
}

func TestSummary(t *testing.T) {
	var s Summary
	for _, v := range []float64{1, 2, 3, 4, 5} {
		s.Add(v)
	}
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3, s.Mean(), 1e-9)
	assert.InDelta(t, 2.5, s.Variance(), 1e-9)
	assert.InDelta(t, 3, s.Median(), 1e-9)
	assert.InDelta(t, 5, s.Percentile(1.0), 1e-9)
	assert.InDelta(t, 1, s.Percentile(0.0), 1e-9)
}

func TestSummary_Empty(t *testing.T) {
	var s Summary
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
	assert.Equal(t, 0.0, s.Median())
}

func TestDistribution(t *testing.T) {
	d := NewDistribution()
	d.Add("AClubs")
	d.Add("AClubs")
	d.Add("KSpades")

	assert.Equal(t, 2, d.Count("AClubs"))
	assert.Equal(t, 3, d.Total())

	entries := d.Entries()
	assert.Equal(t, "AClubs", entries[0].Key)
	assert.Equal(t, []DistributionEntry{{Key: "AClubs", Count: 2}}, d.Top(1))
}

func TestDistribution_Merge(t *testing.T) {
	a := NewDistribution()
	a.Add("Flush")
	b := NewDistribution()
	b.AddN("Flush", 2)
	b.Add("Straight")

	a.Merge(b)
	assert.Equal(t, 3, a.Count("Flush"))
	assert.Equal(t, 1, a.Count("Straight"))
	assert.Equal(t, 4, a.Total())
}
