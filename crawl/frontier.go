package crawl

import (
	"strings"
	"sync"
)

// Entry is one frontier item: a URL and the depth at which it was first
// discovered. Depth is fixed at offer time; later rediscoveries of the
// same URL never change it.
type Entry struct {
	URL   string
	Depth int
}

// Frontier is the breadth-first traversal queue. URLs are claimed with an
// exclusive test-and-set at offer time, so the same URL can never be
// enqueued (and therefore never fetched) twice, even when offers race.
// Dequeues are counted against a page budget; once the budget is spent,
// Next refuses regardless of what remains queued.
//
// The claimed set is exact, not probabilistic: a false positive would
// silently drop an eligible page. It is safe for concurrent use.
type Frontier struct {
	mu       sync.Mutex
	queue    []Entry
	claimed  map[string]struct{}
	maxDepth int
	maxPages int
	popped   int
}

// NewFrontier returns a frontier seeded with rootURL at depth zero.
// maxDepth bounds the depth of accepted entries; maxPages bounds how many
// entries Next and NextLevel will ever hand out. A maxPages of zero means
// the seed itself is refused and the traversal visits nothing.
func NewFrontier(rootURL string, maxDepth, maxPages int) *Frontier {
	f := &Frontier{
		claimed:  make(map[string]struct{}),
		maxDepth: maxDepth,
		maxPages: maxPages,
	}
	f.Offer(rootURL, 0)
	return f
}

// Offer claims a URL and appends it to the queue tail.
// Returns false without side effects when the URL is already claimed, when
// depth exceeds the depth bound, or when the page budget is spent.
// URL fragments are stripped before claiming - URLs differing only by
// fragment are the same page.
func (f *Frontier) Offer(url string, depth int) bool {
	key := stripFragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()

	if depth > f.maxDepth || f.popped >= f.maxPages {
		return false
	}
	if _, ok := f.claimed[key]; ok {
		return false
	}
	f.claimed[key] = struct{}{}
	f.queue = append(f.queue, Entry{URL: key, Depth: depth})
	return true
}

// Next pops the oldest entry, preserving breadth-first order.
// The bool result is false when the queue is empty or the page budget is
// spent; either way the traversal is complete.
func (f *Frontier) Next() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.popped >= f.maxPages || len(f.queue) == 0 {
		return Entry{}, false
	}
	return f.pop(), true
}

// NextLevel pops every queued entry at the current shallowest depth, up to
// the remaining page budget, preserving their frontier order. It returns
// nil when the queue is empty or the budget is spent. Because the queue is
// FIFO and offers only add deeper entries, all entries of one depth are
// contiguous at the head.
func (f *Frontier) NextLevel() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.popped >= f.maxPages || len(f.queue) == 0 {
		return nil
	}
	depth := f.queue[0].Depth
	var level []Entry
	for len(f.queue) > 0 && f.queue[0].Depth == depth && f.popped < f.maxPages {
		level = append(level, f.pop())
	}
	return level
}

// pop removes and returns the head entry. Callers must hold f.mu and have
// checked that the queue is non-empty.
func (f *Frontier) pop() Entry {
	e := f.queue[0]
	f.queue = f.queue[1:]
	f.popped++
	return e
}

// Len returns the number of queued entries not yet handed out.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Dequeued returns how many entries have been handed out so far.
func (f *Frontier) Dequeued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.popped
}

// Claimed returns true if the URL has been claimed, whether or not it has
// been dequeued yet. Fragments are stripped before checking.
func (f *Frontier) Claimed(url string) bool {
	key := stripFragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.claimed[key]
	return ok
}

// stripFragment removes the #fragment suffix from a URL.
func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
