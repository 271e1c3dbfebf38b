package wire

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrajath94/orderbook-simulator/internal/engine"
)

func TestExecutionReport_RoundTrip(t *testing.T) {
	r := ExecutionReport{
		ClientToken: uuid.New(),
		OrderID:     5,
		Side:        engine.Buy,
		OrderType:   engine.Limit,
		Status:      engine.PartiallyFilled,
		Price:       100.50,
		Quantity:    10,
		Remaining:   4,
	}

	decoded, err := DecodeReport(r.Encode())
	require.NoError(t, err)

	got, ok := decoded.(ExecutionReport)
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestTradeReport_RoundTrip(t *testing.T) {
	r := TradeReport{
		ClientToken:     uuid.New(),
		TradeID:         1,
		BuyOrderID:      2,
		SellOrderID:     3,
		Price:           99.99,
		Quantity:        6,
		TimestampUnixNs: 1234567890,
	}

	decoded, err := DecodeReport(r.Encode())
	require.NoError(t, err)

	got, ok := decoded.(TradeReport)
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestBestQuoteReport_RoundTripWithPartialFields(t *testing.T) {
	r := BestQuoteReport{
		ClientToken: uuid.New(),
		HasBid:      true,
		Bid:         99.0,
		HasAsk:      false,
	}

	decoded, err := DecodeReport(r.Encode())
	require.NoError(t, err)

	got, ok := decoded.(BestQuoteReport)
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestDepthReport_RoundTripWithEmptySides(t *testing.T) {
	r := DepthReport{ClientToken: uuid.New()}

	decoded, err := DecodeReport(r.Encode())
	require.NoError(t, err)

	got, ok := decoded.(DepthReport)
	require.True(t, ok)
	assert.Equal(t, r.ClientToken, got.ClientToken)
	assert.Empty(t, got.Bids)
	assert.Empty(t, got.Asks)
}

func TestDepthReport_RoundTripWithLevels(t *testing.T) {
	r := DepthReport{
		ClientToken: uuid.New(),
		Bids:        []LevelDTO{{Price: 100.0, Quantity: 5, OrderCount: 1}},
		Asks: []LevelDTO{
			{Price: 101.0, Quantity: 5, OrderCount: 1},
			{Price: 102.0, Quantity: 3, OrderCount: 2},
		},
	}

	decoded, err := DecodeReport(r.Encode())
	require.NoError(t, err)

	got, ok := decoded.(DepthReport)
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestVWAPReport_RoundTrip(t *testing.T) {
	r := VWAPReport{ClientToken: uuid.New(), Has: true, Price: 101.5}

	decoded, err := DecodeReport(r.Encode())
	require.NoError(t, err)

	got, ok := decoded.(VWAPReport)
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestErrorReport_RoundTrip(t *testing.T) {
	r := ErrorReport{ClientToken: uuid.New(), Message: "validation error: bad quantity"}

	decoded, err := DecodeReport(r.Encode())
	require.NoError(t, err)

	got, ok := decoded.(ErrorReport)
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestDecodeReport_UnknownType(t *testing.T) {
	_, err := DecodeReport([]byte{0xFF})
	assert.ErrorIs(t, err, ErrInvalidMessageType)
}
