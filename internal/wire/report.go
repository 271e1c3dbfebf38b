package wire

import (
	"github.com/google/uuid"

	"github.com/jrajath94/orderbook-simulator/internal/engine"
)

// ReportType identifies the kind of report framed in a server->client
// message.
type ReportType byte

const (
	ExecutionReportType ReportType = iota
	TradeReportType
	BestQuoteReportType
	DepthReportType
	VWAPReportType
	ErrorReportType
)

// Report is implemented by every encodable server->client report.
type Report interface {
	ReportType() ReportType
	Encode() []byte
}

// ExecutionReport carries the post-submit/cancel/get snapshot of a single
// order back to the client that asked for it.
type ExecutionReport struct {
	ClientToken uuid.UUID
	OrderID     uint64
	Side        engine.Side
	OrderType   engine.OrderType
	Status      engine.OrderStatus
	Price       float64
	Quantity    uint64
	Remaining   uint64
}

func (ExecutionReport) ReportType() ReportType { return ExecutionReportType }

func (r ExecutionReport) Encode() []byte {
	e := encoder{}
	e.byte(byte(ExecutionReportType))
	e.uuid(r.ClientToken)
	e.uint64(r.OrderID)
	e.byte(byte(r.Side))
	e.byte(byte(r.OrderType))
	e.byte(byte(r.Status))
	e.float64(r.Price)
	e.uint64(r.Quantity)
	e.uint64(r.Remaining)
	return e.bytes()
}

func decodeExecutionReport(d *decoder) (ExecutionReport, error) {
	var r ExecutionReport
	var err error
	if r.ClientToken, err = d.uuid(); err != nil {
		return r, err
	}
	if r.OrderID, err = d.uint64(); err != nil {
		return r, err
	}
	sideByte, err := d.byte()
	if err != nil {
		return r, err
	}
	r.Side = engine.Side(sideByte)
	typeByte, err := d.byte()
	if err != nil {
		return r, err
	}
	r.OrderType = engine.OrderType(typeByte)
	statusByte, err := d.byte()
	if err != nil {
		return r, err
	}
	r.Status = engine.OrderStatus(statusByte)
	if r.Price, err = d.float64(); err != nil {
		return r, err
	}
	if r.Quantity, err = d.uint64(); err != nil {
		return r, err
	}
	if r.Remaining, err = d.uint64(); err != nil {
		return r, err
	}
	return r, nil
}

// TradeReport notifies a client of one execution. The server sends it
// only to the client whose submission produced the trade; the resting
// counterparty is not sent a report.
type TradeReport struct {
	ClientToken     uuid.UUID
	TradeID         uint64
	BuyOrderID      uint64
	SellOrderID     uint64
	Price           float64
	Quantity        uint64
	TimestampUnixNs int64
}

func (TradeReport) ReportType() ReportType { return TradeReportType }

func (r TradeReport) Encode() []byte {
	e := encoder{}
	e.byte(byte(TradeReportType))
	e.uuid(r.ClientToken)
	e.uint64(r.TradeID)
	e.uint64(r.BuyOrderID)
	e.uint64(r.SellOrderID)
	e.float64(r.Price)
	e.uint64(r.Quantity)
	e.uint64(uint64(r.TimestampUnixNs))
	return e.bytes()
}

func decodeTradeReport(d *decoder) (TradeReport, error) {
	var r TradeReport
	var err error
	if r.ClientToken, err = d.uuid(); err != nil {
		return r, err
	}
	if r.TradeID, err = d.uint64(); err != nil {
		return r, err
	}
	if r.BuyOrderID, err = d.uint64(); err != nil {
		return r, err
	}
	if r.SellOrderID, err = d.uint64(); err != nil {
		return r, err
	}
	if r.Price, err = d.float64(); err != nil {
		return r, err
	}
	if r.Quantity, err = d.uint64(); err != nil {
		return r, err
	}
	ts, err := d.uint64()
	if err != nil {
		return r, err
	}
	r.TimestampUnixNs = int64(ts)
	return r, nil
}

// BestQuoteReport answers a QueryBestQuote: best bid/ask, midprice and
// spread, each independently optional depending on which sides of the
// book are populated.
type BestQuoteReport struct {
	ClientToken uuid.UUID
	HasBid      bool
	Bid         float64
	HasAsk      bool
	Ask         float64
	HasMid      bool
	Mid         float64
	HasSpread   bool
	Spread      float64
}

func (BestQuoteReport) ReportType() ReportType { return BestQuoteReportType }

func encodeBool(e *encoder, v bool) {
	if v {
		e.byte(1)
	} else {
		e.byte(0)
	}
}

func decodeBool(d *decoder) (bool, error) {
	b, err := d.byte()
	return b != 0, err
}

func (r BestQuoteReport) Encode() []byte {
	e := encoder{}
	e.byte(byte(BestQuoteReportType))
	e.uuid(r.ClientToken)
	encodeBool(&e, r.HasBid)
	e.float64(r.Bid)
	encodeBool(&e, r.HasAsk)
	e.float64(r.Ask)
	encodeBool(&e, r.HasMid)
	e.float64(r.Mid)
	encodeBool(&e, r.HasSpread)
	e.float64(r.Spread)
	return e.bytes()
}

func decodeBestQuoteReport(d *decoder) (BestQuoteReport, error) {
	var r BestQuoteReport
	var err error
	if r.ClientToken, err = d.uuid(); err != nil {
		return r, err
	}
	if r.HasBid, err = decodeBool(d); err != nil {
		return r, err
	}
	if r.Bid, err = d.float64(); err != nil {
		return r, err
	}
	if r.HasAsk, err = decodeBool(d); err != nil {
		return r, err
	}
	if r.Ask, err = d.float64(); err != nil {
		return r, err
	}
	if r.HasMid, err = decodeBool(d); err != nil {
		return r, err
	}
	if r.Mid, err = d.float64(); err != nil {
		return r, err
	}
	if r.HasSpread, err = decodeBool(d); err != nil {
		return r, err
	}
	if r.Spread, err = d.float64(); err != nil {
		return r, err
	}
	return r, nil
}

// LevelDTO is the wire representation of one engine.BookLevel.
type LevelDTO struct {
	Price      float64
	Quantity   uint64
	OrderCount uint32
}

// DepthReport answers a QueryDepth.
type DepthReport struct {
	ClientToken uuid.UUID
	Bids        []LevelDTO
	Asks        []LevelDTO
}

func (DepthReport) ReportType() ReportType { return DepthReportType }

func encodeLevels(e *encoder, levels []LevelDTO) {
	e.uint16(uint16(len(levels)))
	for _, l := range levels {
		e.float64(l.Price)
		e.uint64(l.Quantity)
		e.uint16(uint16(l.OrderCount))
	}
}

func decodeLevels(d *decoder) ([]LevelDTO, error) {
	n, err := d.uint16()
	if err != nil {
		return nil, err
	}
	levels := make([]LevelDTO, 0, n)
	for i := uint16(0); i < n; i++ {
		price, err := d.float64()
		if err != nil {
			return nil, err
		}
		qty, err := d.uint64()
		if err != nil {
			return nil, err
		}
		count, err := d.uint16()
		if err != nil {
			return nil, err
		}
		levels = append(levels, LevelDTO{Price: price, Quantity: qty, OrderCount: uint32(count)})
	}
	return levels, nil
}

func (r DepthReport) Encode() []byte {
	e := encoder{}
	e.byte(byte(DepthReportType))
	e.uuid(r.ClientToken)
	encodeLevels(&e, r.Bids)
	encodeLevels(&e, r.Asks)
	return e.bytes()
}

func decodeDepthReport(d *decoder) (DepthReport, error) {
	var r DepthReport
	var err error
	if r.ClientToken, err = d.uuid(); err != nil {
		return r, err
	}
	if r.Bids, err = decodeLevels(d); err != nil {
		return r, err
	}
	if r.Asks, err = decodeLevels(d); err != nil {
		return r, err
	}
	return r, nil
}

// VWAPReport answers a QueryVWAP.
type VWAPReport struct {
	ClientToken uuid.UUID
	Has         bool
	Price       float64
}

func (VWAPReport) ReportType() ReportType { return VWAPReportType }

func (r VWAPReport) Encode() []byte {
	e := encoder{}
	e.byte(byte(VWAPReportType))
	e.uuid(r.ClientToken)
	encodeBool(&e, r.Has)
	e.float64(r.Price)
	return e.bytes()
}

func decodeVWAPReport(d *decoder) (VWAPReport, error) {
	var r VWAPReport
	var err error
	if r.ClientToken, err = d.uuid(); err != nil {
		return r, err
	}
	if r.Has, err = decodeBool(d); err != nil {
		return r, err
	}
	if r.Price, err = d.float64(); err != nil {
		return r, err
	}
	return r, nil
}

// ErrorReport communicates a rejected command back to the client that
// sent it.
type ErrorReport struct {
	ClientToken uuid.UUID
	Message     string
}

func (ErrorReport) ReportType() ReportType { return ErrorReportType }

func (r ErrorReport) Encode() []byte {
	e := encoder{}
	e.byte(byte(ErrorReportType))
	e.uuid(r.ClientToken)
	e.str(r.Message)
	return e.bytes()
}

func decodeErrorReport(d *decoder) (ErrorReport, error) {
	var r ErrorReport
	var err error
	if r.ClientToken, err = d.uuid(); err != nil {
		return r, err
	}
	if r.Message, err = d.str(); err != nil {
		return r, err
	}
	return r, nil
}

// DecodeReport parses the leading ReportType tag off buf and dispatches
// to the matching report decoder.
func DecodeReport(buf []byte) (Report, error) {
	d := newDecoder(buf)
	typeByte, err := d.byte()
	if err != nil {
		return nil, ErrShortMessage
	}
	switch ReportType(typeByte) {
	case ExecutionReportType:
		return decodeExecutionReport(d)
	case TradeReportType:
		return decodeTradeReport(d)
	case BestQuoteReportType:
		return decodeBestQuoteReport(d)
	case DepthReportType:
		return decodeDepthReport(d)
	case VWAPReportType:
		return decodeVWAPReport(d)
	case ErrorReportType:
		return decodeErrorReport(d)
	default:
		return nil, ErrInvalidMessageType
	}
}
