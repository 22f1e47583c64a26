package orderbook

import "github.com/TanishqM1/ladderbook/internal/domain"

// orderNode wraps one resting order in a price level's FIFO queue. It is the
// position-ref handed back by pushBack and stored in the order index: holding
// the node pointer lets CancelOrder unlink in O(1) without scanning the
// queue, the way the C++ reference's OrderEntry pairs an order with a
// stable std::list iterator.
type orderNode struct {
	order      *domain.Order
	prev, next *orderNode
	lvl        *level
}

// level is the FIFO queue of orders resting at one price, plus the running
// total of their remaining quantity (kept incrementally so LevelSnapshot
// never has to walk the queue). pushBack and remove keep total current for
// orders entering/leaving the queue; matchLocked additionally adjusts it
// directly when an order is filled but stays queued.
type level struct {
	price    int32
	head     *orderNode
	tail     *orderNode
	total    uint32
	numOrder int
}

// pushBack appends order to the tail of the queue and returns its node.
func (lv *level) pushBack(o *domain.Order) *orderNode {
	n := &orderNode{order: o, lvl: lv}
	if lv.tail != nil {
		lv.tail.next = n
		n.prev = lv.tail
	} else {
		lv.head = n
	}
	lv.tail = n
	lv.total += o.Remaining
	lv.numOrder++
	return n
}

// front returns the head node, or nil if the level is empty.
func (lv *level) front() *orderNode {
	return lv.head
}

// remove unlinks n from the queue. The caller is responsible for noticing
// when the level becomes empty and erasing it from the ladder.
func (lv *level) remove(n *orderNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		lv.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		lv.tail = n.prev
	}
	n.prev, n.next = nil, nil
	lv.total -= n.order.Remaining
	lv.numOrder--
}

// empty reports whether the queue has no resting orders.
func (lv *level) empty() bool {
	return lv.head == nil
}
