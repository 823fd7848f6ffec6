package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		in     int
		expect string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{65536, "65,536"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{-12, "-12"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expect, FormatWithCommas(tc.in))
	}
}

func TestReverse(t *testing.T) {
	assert.Equal(t, "", Reverse(""))
	assert.Equal(t, "a", Reverse("a"))
	assert.Equal(t, "gnit", Reverse("ting"))
	assert.Equal(t, "revüe", Reverse("eüver"))
}

func TestExtract(t *testing.T) {
	data := map[string]any{
		"i": int64(7),
		"f": 2.5,
		"b": true,
		"s": "x",
		"sec": map[string]any{
			"k": int64(1),
		},
	}

	v, ok := ExtractInt64(data, "i")
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	_, ok = ExtractInt64(data, "s")
	assert.False(t, ok)

	f, ok := ExtractFloat64(data, "f")
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)
	f, ok = ExtractFloat64(data, "i")
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)
	_, ok = ExtractFloat64(data, "b")
	assert.False(t, ok)

	b, ok := ExtractBool(data, "b")
	assert.True(t, ok)
	assert.True(t, b)

	sec, ok := ExtractSection(data, "sec")
	require.True(t, ok)
	assert.Equal(t, int64(1), sec["k"])
	_, ok = ExtractSection(data, "i")
	assert.False(t, ok)
}

func TestTOMLRoundTrip(t *testing.T) {
	type section struct {
		Limit int     `toml:"limit"`
		Ratio float64 `toml:"ratio"`
	}
	type doc struct {
		Query section `toml:"query"`
	}

	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[query]\nlimit = 5\nratio = 1.5\n"), 0644))

	var got doc
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, 5, got.Query.Limit)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(raw, "query")
	require.True(t, ok)
	ratio, ok := ExtractFloat64(sec, "ratio")
	assert.True(t, ok)
	assert.Equal(t, 1.5, ratio)
}

func TestIsValidDataPath(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, isValidDataPath(dir))
	assert.False(t, isValidDataPath(filepath.Join(dir, "missing")))

	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("a\n"), 0644))
	assert.True(t, isValidDataPath(words))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict_0001.bin"), []byte{0, 0, 0, 0}, 0644))
	assert.True(t, isValidDataPath(dir))
}

func TestGetDataDir(t *testing.T) {
	pr := &PathResolver{executableDir: t.TempDir(), configDir: t.TempDir()}

	words := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("a\n"), 0644))
	assert.Equal(t, words, pr.GetDataDir(words))

	data := filepath.Join(pr.configDir, "data")
	require.NoError(t, os.Mkdir(data, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "dict_0001.bin"), []byte{0, 0, 0, 0}, 0644))
	assert.Equal(t, data, pr.GetDataDir("nowhere"))
}
