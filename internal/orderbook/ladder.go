package orderbook

import "github.com/tidwall/btree"

// ladder is one side of the book: a price-sorted index of levels giving
// O(log P) best-price access, each level holding its own O(1) FIFO queue.
// Ordering is supplied by the comparator passed to newLadder: descending
// for bids, ascending for asks, so best always returns the best-priced
// level.
type ladder struct {
	tree *btree.BTreeG[*level]
}

func newLadder(less func(a, b *level) bool) *ladder {
	return &ladder{tree: btree.NewBTreeG(less)}
}

// newBidLadder orders levels with the highest price first.
func newBidLadder() *ladder {
	return newLadder(func(a, b *level) bool { return a.price > b.price })
}

// newAskLadder orders levels with the lowest price first.
func newAskLadder() *ladder {
	return newLadder(func(a, b *level) bool { return a.price < b.price })
}

// best returns the best-priced non-empty level, or nil.
func (l *ladder) best() *level {
	lv, ok := l.tree.Min()
	if !ok {
		return nil
	}
	return lv
}

// getOrCreate returns the level at price, creating and inserting an empty
// one if it does not already exist.
func (l *ladder) getOrCreate(price int32) *level {
	if lv, ok := l.tree.Get(&level{price: price}); ok {
		return lv
	}
	lv := &level{price: price}
	l.tree.Set(lv)
	return lv
}

// deleteIfEmpty removes lv from the ladder if its queue is now empty,
// preserving the invariant that no price level is present with an empty
// queue.
func (l *ladder) deleteIfEmpty(lv *level) {
	if lv.empty() {
		l.tree.Delete(lv)
	}
}

// forEach visits every level in the ladder's price priority order (best
// first) until visit returns false.
func (l *ladder) forEach(visit func(*level) bool) {
	l.tree.Scan(visit)
}

// len reports the number of distinct price levels.
func (l *ladder) len() int {
	return l.tree.Len()
}
