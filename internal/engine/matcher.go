package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jrajath94/orderbook-simulator/internal/book"
)

// SubmitOrder validates, registers, matches and (for LIMIT residuals)
// rests an incoming order. It returns a snapshot of the order as it
// stands once matching and disposition have completed, plus every trade
// the submission produced, oldest first.
//
// Validation happens before id allocation and registration: a rejected
// submit never consumes an id and leaves no trace in the book.
func (b *Book) SubmitOrder(side Side, price decimal.Decimal, quantity uint64, orderType OrderType, timestamp time.Time) (Snapshot, []Trade, error) {
	if err := b.validateSubmit(price, quantity, orderType); err != nil {
		return Snapshot{}, nil, err
	}
	if timestamp.IsZero() {
		timestamp = now()
	}

	order := &Order{
		OrderID:   b.allocateOrderID(),
		Side:      side,
		OrderType: orderType,
		Price:     TicksFromDecimal(price),
		Quantity:  quantity,
		Remaining: quantity,
		Timestamp: timestamp,
		Status:    Open,
	}
	b.registry[order.OrderID] = order

	trades := b.match(order)
	b.dispose(order)

	return order.snapshot(), trades, nil
}

func (b *Book) validateSubmit(price decimal.Decimal, quantity uint64, orderType OrderType) error {
	if quantity == 0 || quantity > b.maxOrderQuantity {
		return validationErrorf("quantity must be in (0, %d], got %d", b.maxOrderQuantity, quantity)
	}
	if orderType != Market {
		if TicksFromDecimal(price) < b.minPrice {
			return validationErrorf("price must be >= %s, got %s", b.minPrice.Decimal(), price)
		}
	}
	return nil
}

// opposingSide returns the side the incoming order matches against: asks
// for a buy, bids for a sell.
func (b *Book) opposingSide(side Side) *book.Side[*Order] {
	if side == Buy {
		return b.asks
	}
	return b.bids
}

// restingSide returns the side a LIMIT residual would rest on: bids for a
// buy, asks for a sell.
func (b *Book) restingSide(side Side) *book.Side[*Order] {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

// priceGated reports whether the opposing level at levelPrice is outside
// the incoming order's limit. MARKET orders are never gated.
func priceGated(order *Order, levelPrice int64) bool {
	if order.OrderType == Market {
		return false
	}
	if order.Side == Buy {
		return levelPrice > int64(order.Price)
	}
	return levelPrice < int64(order.Price)
}

// match walks the opposing side in price-priority order, filling order
// against resting orders until either order is exhausted, the opposing
// side is exhausted, or (for LIMIT/IOC) the price gate stops the walk.
// It returns the trades produced, oldest first.
func (b *Book) match(order *Order) []Trade {
	var trades []Trade
	opposing := b.opposingSide(order.Side)

	for order.Remaining > 0 {
		level, ok := opposing.BestMut()
		if !ok {
			break
		}
		if priceGated(order, level.Price) {
			break
		}

		// Fills are strictly FIFO: walk the queue head to tail. Since fill
		// is always min(order.Remaining, resting.Remaining), at most one
		// resting order per level ends up partially filled, and only
		// because the aggressor ran out exactly there. A partial fill
		// always coincides with order.Remaining hitting zero.
		consumed := 0
		for _, resting := range level.Orders {
			if order.Remaining == 0 {
				break
			}
			fill := min(order.Remaining, resting.Remaining)

			trade := b.recordTrade(order, resting, Ticks(level.Price), fill)
			trades = append(trades, trade)

			order.Remaining -= fill
			resting.Remaining -= fill
			updateRestingStatus(resting)

			if resting.Remaining == 0 {
				consumed++
			}
		}

		opposing.ConsumeFront(level, consumed)
	}

	return trades
}

// recordTrade emits a trade at levelPrice for fill units between order
// (the aggressor) and resting, assigning buy/sell order ids correctly
// regardless of which side is the aggressor. The trade timestamp is
// always the aggressor's.
func (b *Book) recordTrade(order, resting *Order, price Ticks, fill uint64) Trade {
	buyID, sellID := order.OrderID, resting.OrderID
	if order.Side == Sell {
		buyID, sellID = resting.OrderID, order.OrderID
	}
	trade := Trade{
		TradeID:     b.allocateTradeID(),
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Price:       price,
		Quantity:    fill,
		Timestamp:   order.Timestamp,
	}
	b.trades = append(b.trades, trade)
	return trade
}

// updateRestingStatus updates a resting order that just took a fill:
// FILLED if fully consumed, otherwise PARTIALLY_FILLED.
func updateRestingStatus(o *Order) {
	if o.Remaining == 0 {
		o.Status = Filled
	} else {
		o.Status = PartiallyFilled
	}
}

// dispose applies the post-match disposition: a LIMIT residual rests,
// while a MARKET/IOC residual is discarded.
func (b *Book) dispose(order *Order) {
	if order.Remaining == 0 {
		order.Status = Filled
		return
	}

	switch order.OrderType {
	case Limit:
		if order.Remaining == order.Quantity {
			order.Status = Open
		} else {
			order.Status = PartiallyFilled
		}
		b.restingSide(order.Side).Insert(int64(order.Price), order)
	case Market, IOC:
		// Terminal status is CANCELLED even if the order was partially
		// filled during matching; this overrides PARTIALLY_FILLED.
		// Callers discover partial execution via the returned trade list,
		// not via status.
		order.Status = Cancelled
	}
}
