package engine

import "time"

// Order is the authoritative mutable record for one submitted order. The
// registry owns it; side queues only ever hold a reference to it.
type Order struct {
	OrderID   uint64
	Side      Side
	OrderType OrderType
	Price     Ticks // meaningless for Market; validation skips the price check for it
	Quantity  uint64
	Remaining uint64
	Timestamp time.Time
	Status    OrderStatus
}

// Snapshot is an immutable, defensively-copied view of an Order returned
// to callers so that later mutation of the live order never leaks into a
// previously returned value.
type Snapshot struct {
	OrderID   uint64
	Side      Side
	OrderType OrderType
	Price     Ticks
	Quantity  uint64
	Remaining uint64
	Timestamp time.Time
	Status    OrderStatus
}

func (o *Order) snapshot() Snapshot {
	return Snapshot{
		OrderID:   o.OrderID,
		Side:      o.Side,
		OrderType: o.OrderType,
		Price:     o.Price,
		Quantity:  o.Quantity,
		Remaining: o.Remaining,
		Timestamp: o.Timestamp,
		Status:    o.Status,
	}
}

// resting reports whether the order currently belongs in a side queue.
func (o *Order) resting() bool {
	return o.Status == Open || o.Status == PartiallyFilled
}

// ID implements book.Order so *Order can be stored directly in a
// book.Side without the book package needing to know about engine types.
func (o *Order) ID() uint64 {
	return o.OrderID
}
