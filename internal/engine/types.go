// Package engine implements a single-instrument limit order book and its
// matching engine: price-time priority, multi-level sweeping, and the
// LIMIT/MARKET/IOC order types.
package engine

import "github.com/shopspring/decimal"

// Side is one leg of an order or a trade.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// OrderType controls how an order is matched and what happens to any
// residual quantity once matching stops.
type OrderType int

const (
	// Limit orders rest on the book until fully filled or cancelled.
	Limit OrderType = iota
	// Market orders sweep the opposing side ignoring price, discarding any
	// residual once liquidity runs out.
	Market
	// IOC (Immediate-or-Cancel) orders are gated on price like Limit, but
	// never rest: any residual after matching is discarded.
	IOC
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "LIMIT"
	case Market:
		return "MARKET"
	case IOC:
		return "IOC"
	default:
		return "UNKNOWN"
	}
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus int

const (
	Open OrderStatus = iota
	PartiallyFilled
	Filled
	Cancelled
)

func (s OrderStatus) String() string {
	switch s {
	case Open:
		return "OPEN"
	case PartiallyFilled:
		return "PARTIALLY_FILLED"
	case Filled:
		return "FILLED"
	case Cancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Ticks is a fixed-point price, measured in units of 1e-8. It is
// independent of a book's configured tick_size: tick_size is a trading
// rule checked (or, per spec, deliberately not checked) at the validation
// boundary, whereas Ticks is purely a representation that makes price
// equality well-defined for matching and keying.
type Ticks int64

const ticksScale = 8

// TicksFromDecimal converts a caller-supplied decimal price into its
// fixed-point representation.
func TicksFromDecimal(d decimal.Decimal) Ticks {
	return Ticks(d.Shift(ticksScale).Round(0).IntPart())
}

// Decimal renders a fixed-point price back out as an exact decimal value.
func (t Ticks) Decimal() decimal.Decimal {
	return decimal.New(int64(t), -ticksScale)
}

func (t Ticks) Float64() float64 {
	f, _ := t.Decimal().Float64()
	return f
}
