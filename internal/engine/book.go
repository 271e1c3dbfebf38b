package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jrajath94/orderbook-simulator/internal/book"
)

// DefaultMaxOrderQuantity and DefaultMinPrice are the default validation
// bounds applied to every submitted order; a Book may override them via
// Option.
const (
	DefaultMaxOrderQuantity uint64 = 1_000_000
)

// DefaultMinPrice is 0.01 in source units.
var DefaultMinPrice = decimal.New(1, -2)

// Book is one instrument's order book and matching engine. It is
// single-threaded and synchronous: every public method runs to
// completion before any other call observes its state, and callers that
// need concurrent access must serialize it externally.
type Book struct {
	symbol   string
	tickSize decimal.Decimal

	maxOrderQuantity uint64
	minPrice         Ticks

	nextOrderID uint64
	nextTradeID uint64

	registry map[uint64]*Order
	bids     *book.Side[*Order]
	asks     *book.Side[*Order]
	trades   []Trade
}

// Option configures a Book at construction time.
type Option func(*Book)

// WithMaxOrderQuantity overrides DefaultMaxOrderQuantity.
func WithMaxOrderQuantity(max uint64) Option {
	return func(b *Book) { b.maxOrderQuantity = max }
}

// WithMinPrice overrides DefaultMinPrice.
func WithMinPrice(min decimal.Decimal) Option {
	return func(b *Book) { b.minPrice = TicksFromDecimal(min) }
}

// NewBook constructs a book for symbol with the given tick size. tickSize
// is stored and reported but never enforced against submitted prices:
// off-tick prices are accepted.
func NewBook(symbol string, tickSize decimal.Decimal, opts ...Option) (*Book, error) {
	if tickSize.Sign() <= 0 {
		return nil, validationErrorf("tick size must be strictly positive, got %s", tickSize)
	}

	b := &Book{
		symbol:           symbol,
		tickSize:         tickSize,
		maxOrderQuantity: DefaultMaxOrderQuantity,
		minPrice:         TicksFromDecimal(DefaultMinPrice),
		nextOrderID:      0,
		nextTradeID:      0,
		registry:         make(map[uint64]*Order),
		bids: book.New[*Order](func(a, b int64) bool {
			return a > b // descending: highest bid first
		}),
		asks: book.New[*Order](func(a, b int64) bool {
			return a < b // ascending: lowest ask first
		}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Book) Symbol() string { return b.symbol }

func (b *Book) TickSize() decimal.Decimal { return b.tickSize }

func (b *Book) allocateOrderID() uint64 {
	b.nextOrderID++
	return b.nextOrderID
}

func (b *Book) allocateTradeID() uint64 {
	b.nextTradeID++
	return b.nextTradeID
}

// GetOrder returns a snapshot of a previously submitted order. Orders are
// retained in the registry for the book's lifetime, so lookups remain
// well-defined after fill or cancellation.
func (b *Book) GetOrder(orderID uint64) (Snapshot, error) {
	order, ok := b.registry[orderID]
	if !ok {
		return Snapshot{}, &NotFoundError{OrderID: orderID}
	}
	return order.snapshot(), nil
}

// OrderCount returns the number of orders currently OPEN or
// PARTIALLY_FILLED.
func (b *Book) OrderCount() int {
	count := 0
	for _, o := range b.registry {
		if o.resting() {
			count++
		}
	}
	return count
}

// TradeCount returns the length of the trade log.
func (b *Book) TradeCount() int {
	return len(b.trades)
}

// now is overridable in tests; production callers always pass an explicit
// timestamp to SubmitOrder, but a zero-value Timestamp is replaced with
// wall-clock time.
var now = time.Now
