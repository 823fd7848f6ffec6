package matcher

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// buckets groups word indexes by symbol while a trie node is split.
type buckets struct {
	lists [][]int
	seen  []int // word index + 1 that last landed in each symbol
	used  []int // symbols with a non-empty list, in first-use order
}

func newBuckets(size int) *buckets {
	return &buckets{
		lists: make([][]int, size),
		seen:  make([]int, size),
	}
}

// add puts word into the bucket of sym once.
func (b *buckets) add(sym, word int) {
	if b.seen[sym] == word+1 {
		return
	}
	b.seen[sym] = word + 1
	if len(b.lists[sym]) == 0 {
		b.used = append(b.used, sym)
	}
	b.lists[sym] = append(b.lists[sym], word)
}

func (b *buckets) reset() {
	for _, sym := range b.used {
		b.lists[sym] = b.lists[sym][:0]
		b.seen[sym] = 0
	}
	b.used = b.used[:0]
}

// scratchPool lends bucket sets keyed by alphabet size.
type scratchPool struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

func newScratchPool() *scratchPool {
	return &scratchPool{pools: make(map[int]*sync.Pool)}
}

func (p *scratchPool) poolFor(size int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.pools[size]
	if !ok {
		pool = &sync.Pool{New: func() any { return newBuckets(size) }}
		p.pools[size] = pool
	}
	return pool
}

// lend returns an empty bucket set with size symbols.
func (p *scratchPool) lend(size int) *buckets {
	return p.poolFor(size).Get().(*buckets)
}

// give clears b and makes it available again.
func (p *scratchPool) give(b *buckets) {
	b.reset()
	p.poolFor(len(b.lists)).Put(b)
}

// parallelFor runs fn(0) ... fn(n-1) on at most parallelism goroutines and
// waits for all of them. Each call must only write its own output slot.
func parallelFor(n, parallelism int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if parallelism == 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
