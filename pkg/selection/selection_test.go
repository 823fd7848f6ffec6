package selection

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"

	"github.com/bastiangx/wordmatch/pkg/sortedset"
)

func some(values ...int) Selection {
	return Owned(sortedset.FromSlice(values))
}

func indexes(s Selection) []int {
	return sortedset.AppendTo([]int{}, s.Iter())
}

func TestConstructors(t *testing.T) {
	assert.True(t, All(10).IsAll())
	assert.Equal(t, 10, All(10).Count())
	assert.True(t, Empty().IsEmpty())
	assert.True(t, Owned(nil).IsEmpty())
	assert.True(t, Owned(sortedset.FromSlice(nil)).IsEmpty())
	assert.True(t, Borrowed(sortedset.Slice{}, 0).IsEmpty())

	owned := some(1, 2, 3)
	assert.Equal(t, KindSome, owned.Kind())
	assert.False(t, owned.IsBorrowed())
	assert.Equal(t, 3, owned.Count())

	view := Borrowed(sortedset.Slice{4, 5}, 2)
	assert.True(t, view.IsBorrowed())
	assert.Equal(t, []int{4, 5}, indexes(view))
}

func TestIntersectAndUnion(t *testing.T) {
	testCases := []struct {
		description string
		a, b        Selection
		intersect   []int
		union       []int
	}{
		{"all with some", All(6), some(1, 4), []int{1, 4}, []int{0, 1, 2, 3, 4, 5}},
		{"empty with some", Empty(), some(1, 4), []int{}, []int{1, 4}},
		{"overlapping", some(1, 2, 3, 8), some(2, 3, 5), []int{2, 3}, []int{1, 2, 3, 5, 8}},
		{"disjoint", some(0, 2), some(1, 3), []int{}, []int{0, 1, 2, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := Intersect(tc.a, tc.b)
			assert.Equal(t, tc.intersect, indexes(got))
			assert.Equal(t, len(tc.intersect), got.Count())
			assert.Equal(t, indexes(got), indexes(Intersect(tc.b, tc.a)))

			u := Union(tc.a, tc.b)
			assert.Equal(t, tc.union, indexes(u))
			assert.Equal(t, len(tc.union), u.Count())
		})
	}
}

func TestComplement(t *testing.T) {
	assert.True(t, Complement(All(5), 0, 5).IsEmpty())
	assert.True(t, Complement(Empty(), 0, 5).IsAll())
	assert.Equal(t, []int{2, 3}, indexes(Complement(Empty(), 2, 4)))

	c := Complement(some(0, 3), 0, 5)
	assert.Equal(t, []int{1, 2, 4}, indexes(c))
	assert.Equal(t, 3, c.Count())
	assert.True(t, c.IsBorrowed())
}

func TestWithoutSubset(t *testing.T) {
	base := some(1, 2, 3, 7)

	assert.Equal(t, base, WithoutSubset(base, Empty()))
	assert.True(t, WithoutSubset(base, All(8)).IsEmpty())
	assert.True(t, WithoutSubset(Empty(), some(1)).IsEmpty())

	rest := WithoutSubset(base, some(2, 7))
	assert.Equal(t, []int{1, 3}, indexes(rest))
	assert.Equal(t, 2, rest.Count())

	fromAll := WithoutSubset(All(5), some(0, 4))
	assert.Equal(t, []int{1, 2, 3}, indexes(fromAll))
	assert.Equal(t, 3, fromAll.Count())

	assert.True(t, WithoutSubset(base, base).IsEmpty())
}

func TestLawsAgainstRoaring(t *testing.T) {
	a := []int{0, 1, 2, 5, 9, 10, 11, 40}
	b := []int{1, 2, 3, 9, 11, 39, 40, 41}
	ra := roaring.New()
	rb := roaring.New()
	for _, v := range a {
		ra.Add(uint32(v))
	}
	for _, v := range b {
		rb.Add(uint32(v))
	}

	inter := Intersect(some(a...), some(b...))
	assert.Equal(t, int(roaring.And(ra, rb).GetCardinality()), inter.Count())

	rest := WithoutSubset(some(a...), inter)
	assert.Equal(t, int(roaring.AndNot(ra, rb).GetCardinality()), rest.Count())
	assert.True(t, Intersect(rest, inter).IsEmpty())

	full := Union(Complement(some(a...), 0, 50), some(a...))
	assert.Equal(t, 50, full.Count())
}
