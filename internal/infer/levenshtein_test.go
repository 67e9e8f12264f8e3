package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"counter", "countr", 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, levenshteinDistance(c.a, c.b), "%q vs %q", c.a, c.b)
	}
}

func TestNearestNameThreshold(t *testing.T) {
	names := []string{"counter", "total", "index"}

	got, ok := nearestName("countr", names)
	assert.True(t, ok)
	assert.Equal(t, "counter", got)

	_, ok = nearestName("zzzzzzzzzzzz", names)
	assert.False(t, ok)
}
