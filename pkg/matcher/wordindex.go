package matcher

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// hashChunk is the number of words hashed by one worker.
const hashChunk = 1 << 14

// WordIndex finds the dictionary index of an exact word.
//
// Buckets are stored flat: the indexes in bucket b are
// entries[offsets[b]:offsets[b+1]], in dictionary order.
type WordIndex struct {
	words   []string
	mask    uint64
	offsets []int32
	entries []int32
}

// NewWordIndex hashes words in parallel and groups them into roughly two words
// per bucket.
func NewWordIndex(words []string, parallelism int) *WordIndex {
	mask := uint64(0)
	if size := nextPow2(len(words)) / 2; size > 1 {
		mask = uint64(size - 1)
	}
	idx := &WordIndex{
		words:   words,
		mask:    mask,
		offsets: make([]int32, mask+2),
		entries: make([]int32, len(words)),
	}

	hashes := make([]uint64, len(words))
	chunks := (len(words) + hashChunk - 1) / hashChunk
	parallelFor(chunks, parallelism, func(i int) {
		end := min((i+1)*hashChunk, len(words))
		for j := i * hashChunk; j < end; j++ {
			hashes[j] = xxhash.Sum64String(words[j]) & mask
		}
	})

	for _, h := range hashes {
		idx.offsets[h+1]++
	}
	for b := 1; b < len(idx.offsets); b++ {
		idx.offsets[b] += idx.offsets[b-1]
	}
	next := make([]int32, mask+1)
	copy(next, idx.offsets)
	for i, h := range hashes {
		idx.entries[next[h]] = int32(i)
		next[h]++
	}
	return idx
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Get returns the index of word, or false when the dictionary lacks it. For
// duplicated words the first index is returned.
func (idx *WordIndex) Get(word string) (int, bool) {
	for _, i := range idx.bucket(word) {
		if idx.words[i] == word {
			return int(i), true
		}
	}
	return 0, false
}

// AppendAll appends every index holding word to dst in ascending order, so a
// duplicated word yields each of its copies.
func (idx *WordIndex) AppendAll(dst []int, word string) []int {
	for _, i := range idx.bucket(word) {
		if idx.words[i] == word {
			dst = append(dst, int(i))
		}
	}
	return dst
}

func (idx *WordIndex) bucket(word string) []int32 {
	b := xxhash.Sum64String(word) & idx.mask
	return idx.entries[idx.offsets[b]:idx.offsets[b+1]]
}

// Len returns the number of indexed words.
func (idx *WordIndex) Len() int { return len(idx.words) }

// Buckets returns the number of hash buckets.
func (idx *WordIndex) Buckets() int { return int(idx.mask) + 1 }
