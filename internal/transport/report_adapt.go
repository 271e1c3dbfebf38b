package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jrajath94/orderbook-simulator/internal/engine"
	"github.com/jrajath94/orderbook-simulator/internal/wire"
)

// decimalFromFloat converts a wire float64 price into the decimal value
// engine.SubmitOrder expects at its validation/ticks boundary.
func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func snapshotReport(token uuid.UUID, s engine.Snapshot) wire.ExecutionReport {
	return wire.ExecutionReport{
		ClientToken: token,
		OrderID:     s.OrderID,
		Side:        s.Side,
		OrderType:   s.OrderType,
		Status:      s.Status,
		Price:       s.Price.Float64(),
		Quantity:    s.Quantity,
		Remaining:   s.Remaining,
	}
}

func tradeReport(token uuid.UUID, t engine.Trade) wire.TradeReport {
	return wire.TradeReport{
		ClientToken:     token,
		TradeID:         t.TradeID,
		BuyOrderID:      t.BuyOrderID,
		SellOrderID:     t.SellOrderID,
		Price:           t.Price.Float64(),
		Quantity:        t.Quantity,
		TimestampUnixNs: t.Timestamp.UnixNano(),
	}
}

func bestQuoteReport(token uuid.UUID, book *engine.Book) wire.BestQuoteReport {
	r := wire.BestQuoteReport{ClientToken: token}
	if bid, ok := book.BestBid(); ok {
		r.HasBid = true
		r.Bid = bid.Float64()
	}
	if ask, ok := book.BestAsk(); ok {
		r.HasAsk = true
		r.Ask = ask.Float64()
	}
	if mid, ok := book.Midprice(); ok {
		r.HasMid = true
		r.Mid = mid.Float64()
	}
	if spread, ok := book.Spread(); ok {
		r.HasSpread = true
		r.Spread = spread.Float64()
	}
	return r
}

func levelDTOs(levels []engine.BookLevel) []wire.LevelDTO {
	out := make([]wire.LevelDTO, len(levels))
	for i, l := range levels {
		out[i] = wire.LevelDTO{
			Price:      l.Price.Float64(),
			Quantity:   l.Quantity,
			OrderCount: uint32(l.OrderCount),
		}
	}
	return out
}

func depthReport(token uuid.UUID, bids, asks []engine.BookLevel) wire.DepthReport {
	return wire.DepthReport{
		ClientToken: token,
		Bids:        levelDTOs(bids),
		Asks:        levelDTOs(asks),
	}
}
