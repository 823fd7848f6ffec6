package query

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	testCases := []struct {
		description string
		tokens      []Token
		valid       bool
	}{
		{"nil stream", nil, false},
		{"empty stream", []Token{}, false},
		{"unknown kind", []Token{{Kind: 0}}, false},
		{"empty char set", []Token{CharSet("")}, false},
		{"empty optional", []Token{Literal("a"), Optional("")}, false},
		{"empty literal among others", []Token{Literal(""), AnyRun()}, false},
		{"empty word pattern", []Token{Literal("")}, true},
		{"plain literal", []Token{Literal("abc")}, true},
		{"mixed", []Token{AnyChar(), Literal("b"), CharSet("xy"), Optional("z"), AnyRun()}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			q, err := New(tc.tokens)
			if !tc.valid {
				assert.ErrorIs(t, err, ErrInvalidQuery)
				assert.Nil(t, q)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tokens, q.Tokens())
		})
	}
}

func TestStatistics(t *testing.T) {
	testCases := []struct {
		pattern          string
		minLength        int
		maxLength        int
		combinations     int
		matchAny         bool
		placeholdersOnly bool
	}{
		{"love", 4, 4, 1, false, false},
		{"te?t", 4, 4, Unbounded, false, false},
		{"[ab][cde]", 2, 2, 6, false, false},
		{"ca{t}s", 3, 4, 2, false, false},
		{"f{orm}", 1, 4, 2, false, false},
		{"a*", 1, Unbounded, Unbounded, false, false},
		{"*", 0, Unbounded, Unbounded, true, true},
		{"??*", 2, Unbounded, Unbounded, false, true},
		{"????????", 8, 8, Unbounded, false, true},
		{"{abc}", 0, 3, 2, false, false},
		{"initiali[zs]e", 10, 10, 2, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			q := MustParse(tc.pattern)
			assert.Equal(t, tc.minLength, q.MinLength(), "min length")
			assert.Equal(t, tc.maxLength, q.MaxLength(), "max length")
			assert.Equal(t, tc.combinations, q.Combinations(), "combinations")
			assert.Equal(t, tc.matchAny, q.MatchAny(), "match any")
			assert.Equal(t, tc.placeholdersOnly, q.PlaceholdersOnly(), "placeholders only")
			assert.Equal(t, tc.combinations != Unbounded, q.FiniteCombinations())
		})
	}
}

func TestMatchAnyWithOptional(t *testing.T) {
	q := MustNew(Optional("ab"), AnyRun())
	assert.True(t, q.MatchAny())
	assert.False(t, q.PlaceholdersOnly())
}

func TestCombinationProduct(t *testing.T) {
	sets := []string{"ab", "cde", "fghi", "jk"}
	tokens := make([]Token, 0, len(sets))
	expected := 1
	for _, s := range sets {
		tokens = append(tokens, CharSet(s))
		expected *= len(s)
		q := MustNew(tokens...)
		assert.Equal(t, expected, q.Combinations())
		assert.Equal(t, q.MinLength(), q.MaxLength())
	}

	many := make([]Token, 0, 70)
	for i := 0; i < 70; i++ {
		many = append(many, CharSet("01"))
	}
	assert.Equal(t, Unbounded, MustNew(many...).Combinations(), "saturates on overflow")
}

func TestLengthsFixedWithoutRun(t *testing.T) {
	for _, pattern := range SamplePatterns {
		q := MustParse(pattern)
		if q.Count(KindOptional) > 0 {
			continue
		}
		assert.Equal(t, q.Count(KindAnyRun) == 0, q.MinLength() == q.MaxLength(), pattern)
	}
}

func TestEnumerate(t *testing.T) {
	testCases := []struct {
		pattern  string
		expected []string
	}{
		{"love", []string{"love"}},
		{"ca{t}s", []string{"cas", "cats"}},
		{"[ab]{c}", []string{"a", "ac", "b", "bc"}},
		{"[bjp]et", []string{"bet", "jet", "pet"}},
		{"{x}{y}", []string{"", "y", "x", "xy"}},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			seq, err := MustParse(tc.pattern).Enumerate()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, slices.Collect(seq))
		})
	}
}

func TestEnumerateStopsEarly(t *testing.T) {
	seq, err := MustParse("[abc][def]").Enumerate()
	require.NoError(t, err)
	var got []string
	for s := range seq {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"ad", "ae"}, got)
}

func TestEnumerateNotFinite(t *testing.T) {
	for _, pattern := range []string{"a?", "*", "te?t", "x*y"} {
		_, err := MustParse(pattern).Enumerate()
		assert.True(t, errors.Is(err, ErrNotFinite), pattern)
	}
}

func TestSubstrings(t *testing.T) {
	u := Unbounded
	testCases := []struct {
		pattern  string
		expected []AnchoredSubstring
	}{
		{"te?t", []AnchoredSubstring{{"te", 0, 0, 2, 2}, {"t", 3, 3, 0, 0}}},
		{"*ably", []AnchoredSubstring{{"ably", 0, u, 0, 0}}},
		{"a*b*c", []AnchoredSubstring{{"a", 0, 0, 2, u}, {"b", 1, u, 1, u}, {"c", 2, u, 0, 0}}},
		{"f{orm}", []AnchoredSubstring{{"f", 0, 0, 0, 3}}},
		{"ca{t}s", []AnchoredSubstring{{"ca", 0, 0, 1, 2}, {"s", 2, 3, 0, 0}}},
		{"[bjp]et", []AnchoredSubstring{{"et", 1, 1, 0, 0}}},
		{"????*", []AnchoredSubstring{}},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.expected, MustParse(tc.pattern).Substrings())
		})
	}
}

func TestSubstringAnchors(t *testing.T) {
	runs := MustParse("te?t").Substrings()
	require.Len(t, runs, 2)
	assert.True(t, runs[0].LeftFixed())
	assert.True(t, runs[1].RightFixed())

	runs = MustParse("*ell*").Substrings()
	require.Len(t, runs, 1)
	assert.False(t, runs[0].LeftFixed())
	assert.False(t, runs[0].RightFixed())
}
