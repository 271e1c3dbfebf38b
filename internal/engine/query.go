package engine

import "github.com/jrajath94/orderbook-simulator/internal/book"

// BookLevel is an aggregated, read-only view of one price level.
type BookLevel struct {
	Price      Ticks
	Quantity   uint64
	OrderCount int
}

// aggregateOrderLevel collapses a price level's resting orders into a
// single {price, quantity, order_count} view, counting only orders with
// remaining > 0.
func aggregateOrderLevel(level *book.Level[*Order]) BookLevel {
	var quantity uint64
	var count int
	for _, o := range level.Orders {
		if o.Remaining > 0 {
			quantity += o.Remaining
			count++
		}
	}
	return BookLevel{
		Price:      Ticks(level.Price),
		Quantity:   quantity,
		OrderCount: count,
	}
}

// BestBid returns the highest price with a non-empty bid queue.
func (b *Book) BestBid() (Ticks, bool) {
	level, ok := b.bids.Best()
	if !ok {
		return 0, false
	}
	return Ticks(level.Price), true
}

// BestAsk returns the lowest price with a non-empty ask queue.
func (b *Book) BestAsk() (Ticks, bool) {
	level, ok := b.asks.Best()
	if !ok {
		return 0, false
	}
	return Ticks(level.Price), true
}

// Midprice returns (best_bid + best_ask) / 2, if both sides are present.
func (b *Book) Midprice() (Ticks, bool) {
	bid, ok := b.BestBid()
	if !ok {
		return 0, false
	}
	ask, ok := b.BestAsk()
	if !ok {
		return 0, false
	}
	return (bid + ask) / 2, true
}

// Spread returns best_ask - best_bid, if both sides are present.
func (b *Book) Spread() (Ticks, bool) {
	bid, ok := b.BestBid()
	if !ok {
		return 0, false
	}
	ask, ok := b.BestAsk()
	if !ok {
		return 0, false
	}
	return ask - bid, true
}

// Depth returns up to levels aggregated price levels on each side, bids
// high-to-low and asks low-to-high.
func (b *Book) Depth(levels int) (bidLevels, askLevels []BookLevel) {
	bidLevels = collectLevels(b.bids, levels)
	askLevels = collectLevels(b.asks, levels)
	return bidLevels, askLevels
}

func collectLevels(side *book.Side[*Order], limit int) []BookLevel {
	out := make([]BookLevel, 0, limit)
	side.Walk(func(level *book.Level[*Order]) bool {
		if len(out) >= limit {
			return false
		}
		out = append(out, aggregateOrderLevel(level))
		return true
	})
	return out
}

// VWAP computes the volume-weighted average price a hypothetical market
// order of quantity on side would obtain sweeping the opposing aggregated
// depth. It returns false if the opposing side cannot supply the full
// quantity.
func (b *Book) VWAP(side Side, quantity uint64) (Ticks, bool) {
	if quantity == 0 {
		return 0, false
	}

	opposing := b.opposingSide(side)
	var need = quantity
	var cost int64 // accumulated in Ticks*quantity units

	opposing.Walk(func(level *book.Level[*Order]) bool {
		if need == 0 {
			return false
		}
		agg := aggregateOrderLevel(level)
		if agg.Quantity == 0 {
			return true
		}
		fill := min(need, agg.Quantity)
		cost += int64(fill) * int64(agg.Price)
		need -= fill
		return true
	})

	if need > 0 {
		return 0, false
	}
	return Ticks(cost / int64(quantity)), true
}
