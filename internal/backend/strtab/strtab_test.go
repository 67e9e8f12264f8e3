package strtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternHitReusesIndex(t *testing.T) {
	tbl := New()

	idx1, isNew1 := tbl.Intern([]byte("hello"))
	require.True(t, isNew1)
	assert.Equal(t, 0, idx1)

	idx2, isNew2 := tbl.Intern([]byte("hello"))
	assert.False(t, isNew2)
	assert.Equal(t, idx1, idx2)
}

func TestInternMissAssignsNextCounter(t *testing.T) {
	tbl := New()

	a, _ := tbl.Intern([]byte("aaa"))
	b, isNew := tbl.Intern([]byte("bbb"))
	require.True(t, isNew)
	assert.Equal(t, a+1, b)
}

func TestInternDistinguishesLengthBeforeBytes(t *testing.T) {
	tbl := New()

	short, _ := tbl.Intern([]byte("ab"))
	long, _ := tbl.Intern([]byte("aba"))
	again, isNew := tbl.Intern([]byte("ab"))

	assert.False(t, isNew)
	assert.Equal(t, short, again)
	assert.NotEqual(t, short, long)
}

func TestInternManyEntriesStayConsistent(t *testing.T) {
	tbl := New()
	words := []string{"zebra", "apple", "mango", "apple", "kiwi", "zebra", "fig"}
	seen := map[string]int{}

	for _, w := range words {
		idx, isNew := tbl.Intern([]byte(w))
		if prior, ok := seen[w]; ok {
			assert.False(t, isNew)
			assert.Equal(t, prior, idx)
		} else {
			assert.True(t, isNew)
			seen[w] = idx
		}
	}
	assert.Equal(t, 5, tbl.Len())
}
