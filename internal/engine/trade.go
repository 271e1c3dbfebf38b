package engine

import "time"

// Trade is an immutable, append-only execution record. Once created it is
// never mutated; the trade log only ever grows.
type Trade struct {
	TradeID     uint64
	BuyOrderID  uint64
	SellOrderID uint64
	Price       Ticks
	Quantity    uint64
	Timestamp   time.Time
}
