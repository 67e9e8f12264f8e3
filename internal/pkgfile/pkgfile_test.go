package pkgfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tokens := []Token{
		{ID: TokenWord, Word: "main"},
		{ID: TokenWord, Word: "int"}, // compresses to a shorthand
		{ID: TokenCString, Word: "hello"},
		{ID: TokenString, Bytes: []byte("raw bytes")},
		{ID: TokenGenericInt, Int: -42},
		{ID: TokenGenericFloat, Float: 3.5},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tokens))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(tokens))

	assert.Equal(t, "main", got[0].Word)
	assert.Equal(t, "int", got[1].Word)
	assert.Equal(t, TokenWord, got[1].ID)
	assert.Equal(t, "hello", got[2].Word)
	assert.Equal(t, []byte("raw bytes"), got[3].Bytes)
	assert.Equal(t, int64(-42), got[4].Int)
	assert.InDelta(t, 3.5, got[5].Float, 0.000001)
}

func TestReadRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	_, err := Read(buf)
	assert.Error(t, err)
}

func TestReadRejectsWrongIterationVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	raw := buf.Bytes()
	raw[10] = raw[10] + 1 // perturb the iteration_version field
	_, err := Read(bytes.NewReader(raw))
	assert.Error(t, err)
}

func TestDecodeAllPreservesOrder(t *testing.T) {
	files := map[string][]Token{
		"a.adeptpkg": {{ID: TokenWord, Word: "alpha"}},
		"b.adeptpkg": {{ID: TokenWord, Word: "beta"}},
		"c.adeptpkg": {{ID: TokenWord, Word: "gamma"}},
	}
	encoded := map[string][]byte{}
	for name, toks := range files {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, toks))
		encoded[name] = buf.Bytes()
	}

	open := func(path string) (io.ReadCloser, error) {
		data, ok := encoded[path]
		if !ok {
			return nil, fmt.Errorf("no such file %q", path)
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	paths := []string{"a.adeptpkg", "b.adeptpkg", "c.adeptpkg"}
	results, err := DecodeAll(context.Background(), open, paths)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "alpha", results[0][0].Word)
	assert.Equal(t, "beta", results[1][0].Word)
	assert.Equal(t, "gamma", results[2][0].Word)
}

func TestDependencySatisfiesGreaterEqual(t *testing.T) {
	d := Dependency{Name: "foo", Constraint: ">=v1.2.0"}
	assert.True(t, d.Satisfies("v1.2.0"))
	assert.True(t, d.Satisfies("v1.3.0"))
	assert.False(t, d.Satisfies("v1.1.0"))
}

func TestDependencyLatestPicksHighestSatisfying(t *testing.T) {
	d := Dependency{Name: "foo", Constraint: ">=v1.2.0"}
	got := d.Latest([]string{"v1.0.0", "v1.2.0", "v1.5.0", "v1.1.9"})
	assert.Equal(t, "v1.5.0", got)
}
