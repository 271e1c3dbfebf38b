package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(t *testing.T) *Book {
	t.Helper()
	b, err := NewBook("SIM", decimal.New(1, -2))
	require.NoError(t, err)
	return b
}

func price(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func at(seconds int64) time.Time {
	return time.Unix(seconds, 0)
}

// Scenario 1: full fill at crossed limit.
func TestSubmitOrder_FullFillAtCrossedLimit(t *testing.T) {
	b := newTestBook(t)

	_, _, err := b.SubmitOrder(Sell, price("100.00"), 10, Limit, at(1))
	require.NoError(t, err)

	buyer, trades, err := b.SubmitOrder(Buy, price("100.00"), 10, Limit, at(2))
	require.NoError(t, err)

	assert.Equal(t, Filled, buyer.Status)
	assert.EqualValues(t, 0, buyer.Remaining)
	require.Len(t, trades, 1)
	assert.Equal(t, uint64(10), trades[0].Quantity)
	assert.Equal(t, uint64(2), trades[0].BuyOrderID)
	assert.Equal(t, uint64(1), trades[0].SellOrderID)
	assert.Equal(t, at(2), trades[0].Timestamp)
	assert.True(t, trades[0].Price.Decimal().Equal(price("100.00")))

	_, ok := b.BestBid()
	assert.False(t, ok)
	_, ok = b.BestAsk()
	assert.False(t, ok)
}

// Scenario 2: partial fill leaves residual resting.
func TestSubmitOrder_PartialFillLeavesResidualResting(t *testing.T) {
	b := newTestBook(t)

	_, _, err := b.SubmitOrder(Sell, price("100.00"), 5, Limit, at(1))
	require.NoError(t, err)

	buyer, trades, err := b.SubmitOrder(Buy, price("100.00"), 10, Limit, at(2))
	require.NoError(t, err)

	assert.Equal(t, PartiallyFilled, buyer.Status)
	assert.EqualValues(t, 5, buyer.Remaining)
	require.Len(t, trades, 1)
	assert.EqualValues(t, 5, trades[0].Quantity)

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Decimal().Equal(price("100.00")))

	bidLevels, _ := b.Depth(10)
	require.Len(t, bidLevels, 1)
	assert.EqualValues(t, 5, bidLevels[0].Quantity)
	assert.Equal(t, 1, bidLevels[0].OrderCount)
}

// Scenario 3: price-time priority within a level.
func TestSubmitOrder_PriceTimePriority(t *testing.T) {
	b := newTestBook(t)

	_, _, err := b.SubmitOrder(Sell, price("100.00"), 5, Limit, at(1))
	require.NoError(t, err)
	_, _, err = b.SubmitOrder(Sell, price("100.00"), 5, Limit, at(2))
	require.NoError(t, err)

	_, trades, err := b.SubmitOrder(Buy, price("100.00"), 5, Limit, at(3))
	require.NoError(t, err)

	require.Len(t, trades, 1)
	assert.Equal(t, uint64(1), trades[0].SellOrderID)

	_, asks := b.Depth(10)
	require.Len(t, asks, 1)
	assert.EqualValues(t, 5, asks[0].Quantity)
	assert.Equal(t, 1, asks[0].OrderCount)

	order2, err := b.GetOrder(2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, order2.Remaining)
	assert.Equal(t, Open, order2.Status)
}

// Scenario 4: market sweep across levels.
func TestSubmitOrder_MarketSweepAcrossLevels(t *testing.T) {
	b := newTestBook(t)

	_, _, err := b.SubmitOrder(Sell, price("100.00"), 5, Limit, at(1))
	require.NoError(t, err)
	_, _, err = b.SubmitOrder(Sell, price("101.00"), 5, Limit, at(2))
	require.NoError(t, err)

	aggressor, trades, err := b.SubmitOrder(Buy, price("0"), 8, Market, at(3))
	require.NoError(t, err)

	require.Len(t, trades, 2)
	assert.True(t, trades[0].Price.Decimal().Equal(price("100.00")))
	assert.EqualValues(t, 5, trades[0].Quantity)
	assert.True(t, trades[1].Price.Decimal().Equal(price("101.00")))
	assert.EqualValues(t, 3, trades[1].Quantity)

	assert.Equal(t, Filled, aggressor.Status)
	assert.EqualValues(t, 0, aggressor.Remaining)

	_, asks := b.Depth(10)
	require.Len(t, asks, 1)
	assert.True(t, asks[0].Price.Decimal().Equal(price("101.00")))
	assert.EqualValues(t, 2, asks[0].Quantity)
}

// Scenario 5: IOC cancels residual.
func TestSubmitOrder_IOCCancelsResidual(t *testing.T) {
	b := newTestBook(t)

	_, _, err := b.SubmitOrder(Sell, price("100.00"), 5, Limit, at(1))
	require.NoError(t, err)

	aggressor, trades, err := b.SubmitOrder(Buy, price("100.00"), 10, IOC, at(2))
	require.NoError(t, err)

	require.Len(t, trades, 1)
	assert.EqualValues(t, 5, trades[0].Quantity)
	assert.Equal(t, Cancelled, aggressor.Status)
	assert.EqualValues(t, 5, aggressor.Remaining)

	_, asks := b.Depth(10)
	assert.Len(t, asks, 0)
}

// IOC gated by price never touches an inferior opposing level.
func TestSubmitOrder_IOCRespectsPriceGate(t *testing.T) {
	b := newTestBook(t)

	_, _, err := b.SubmitOrder(Sell, price("101.00"), 5, Limit, at(1))
	require.NoError(t, err)

	aggressor, trades, err := b.SubmitOrder(Buy, price("100.00"), 5, IOC, at(2))
	require.NoError(t, err)

	assert.Len(t, trades, 0)
	assert.Equal(t, Cancelled, aggressor.Status)
	assert.EqualValues(t, 5, aggressor.Remaining)

	_, asks := b.Depth(10)
	require.Len(t, asks, 1)
	assert.EqualValues(t, 5, asks[0].Quantity)
}

func TestSubmitOrder_AggressorNeverReentersSameTraversal(t *testing.T) {
	b := newTestBook(t)

	_, _, err := b.SubmitOrder(Sell, price("100.00"), 5, Limit, at(1))
	require.NoError(t, err)

	// A buy that fully consumes the only ask and rests the remainder must
	// not match against its own freshly-resting bid.
	_, trades, err := b.SubmitOrder(Buy, price("100.00"), 10, Limit, at(2))
	require.NoError(t, err)
	assert.Len(t, trades, 1)

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Decimal().Equal(price("100.00")))
}
