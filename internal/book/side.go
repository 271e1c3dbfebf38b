// Package book implements one side (bid or ask) of a price-time priority
// order book: a price-ordered container of FIFO queues. Removing a known
// resting order finds its price in O(1) through an id index, looks the
// level up in the tree, and then scans that level's queue for the order;
// removal is not O(1) in the length of the queue.
package book

import "github.com/tidwall/btree"

// Order is the minimal view a side needs of a resting order. Callers
// (internal/engine) pass in their own order records; the side never
// copies or owns them, it only arranges references to them by price.
type Order interface {
	ID() uint64
}

// Level is one price level: a FIFO queue of resting orders, oldest first.
type Level[O Order] struct {
	Price  int64
	Orders []O
}

// Side is a price-indexed container of Levels for one side of a book.
// Bid sides are ordered highest price first, ask sides lowest first; that
// choice is made once at construction via the less function passed to
// New, mirroring tidwall/btree's comparator-driven ordering.
type Side[O Order] struct {
	levels *btree.BTreeG[*Level[O]]
	// index gives O(1) lookup of which price currently holds a given
	// resting order id, so Remove/cancel doesn't need to scan every level.
	index map[uint64]int64
}

// New constructs an empty side. less must impose a strict weak ordering
// over prices; ascending for asks, descending for bids.
func New[O Order](less func(a, b int64) bool) *Side[O] {
	levels := btree.NewBTreeG(func(a, b *Level[O]) bool {
		return less(a.Price, b.Price)
	})
	return &Side[O]{
		levels: levels,
		index:  make(map[uint64]int64),
	}
}

// Insert appends order to the back of the queue at price, creating the
// level if it does not already exist.
func (s *Side[O]) Insert(price int64, order O) {
	level, ok := s.levels.Get(&Level[O]{Price: price})
	if !ok {
		level = &Level[O]{Price: price}
		s.levels.Set(level)
	}
	level.Orders = append(level.Orders, order)
	s.index[order.ID()] = price
}

// Remove detaches a known order from its current price level, wherever it
// sits in the queue, dropping the level if it becomes empty. Reports
// whether the order was found.
func (s *Side[O]) Remove(orderID uint64) bool {
	price, ok := s.index[orderID]
	if !ok {
		return false
	}
	delete(s.index, orderID)

	level, ok := s.levels.Get(&Level[O]{Price: price})
	if !ok {
		return false
	}
	for i, o := range level.Orders {
		if o.ID() == orderID {
			level.Orders = append(level.Orders[:i], level.Orders[i+1:]...)
			break
		}
	}
	if len(level.Orders) == 0 {
		s.levels.Delete(level)
	}
	return true
}

// Best returns the highest-priority level (per the less function passed
// to New), or false if the side is empty.
func (s *Side[O]) Best() (*Level[O], bool) {
	return s.levels.Min()
}

// BestMut is like Best but returns a mutable handle, for the matcher to
// drain orders from in place.
func (s *Side[O]) BestMut() (*Level[O], bool) {
	return s.levels.MinMut()
}

// ConsumeFront removes the first n orders of level (they have been fully
// filled by the matcher) and deletes the level outright if that empties
// it. n may equal len(level.Orders).
func (s *Side[O]) ConsumeFront(level *Level[O], n int) {
	for _, o := range level.Orders[:n] {
		delete(s.index, o.ID())
	}
	level.Orders = level.Orders[n:]
	if len(level.Orders) == 0 {
		s.levels.Delete(level)
	}
}

// Walk iterates levels in priority order, stopping early if fn returns
// false.
func (s *Side[O]) Walk(fn func(level *Level[O]) bool) {
	s.levels.Scan(fn)
}

// Len returns the number of distinct price levels currently resting.
func (s *Side[O]) Len() int {
	return s.levels.Len()
}
