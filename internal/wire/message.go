package wire

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jrajath94/orderbook-simulator/internal/engine"
)

// MessageType identifies the kind of command framed in a message.
type MessageType uint16

const (
	Heartbeat MessageType = iota
	NewOrder
	CancelOrder
	Query
	LogBook
)

// symbolWidth is the fixed width of the ticker field on the wire.
const symbolWidth = 8

// QueryType selects which read-only book query a Query message performs.
type QueryType byte

const (
	QueryBestQuote QueryType = iota // best bid/ask, midprice, spread
	QueryDepth
	QueryVWAP
	QueryGetOrder
)

// Message is implemented by every decoded command.
type Message interface {
	Type() MessageType
}

// NewOrderMessage requests a submit_order command.
type NewOrderMessage struct {
	ClientToken uuid.UUID
	Symbol      string
	Side        engine.Side
	OrderType   engine.OrderType
	Price       float64
	Quantity    uint64
	Owner       string
}

func (NewOrderMessage) Type() MessageType { return NewOrder }

func (m NewOrderMessage) Encode() []byte {
	e := encoder{}
	e.uint16(uint16(NewOrder))
	e.uuid(m.ClientToken)
	e.fixed(m.Symbol, symbolWidth)
	e.byte(byte(m.Side))
	e.byte(byte(m.OrderType))
	e.float64(m.Price)
	e.uint64(m.Quantity)
	e.str(m.Owner)
	return e.bytes()
}

func decodeNewOrder(d *decoder) (NewOrderMessage, error) {
	var m NewOrderMessage
	var err error
	if m.ClientToken, err = d.uuid(); err != nil {
		return m, err
	}
	if m.Symbol, err = d.fixed(symbolWidth); err != nil {
		return m, err
	}
	sideByte, err := d.byte()
	if err != nil {
		return m, err
	}
	m.Side = engine.Side(sideByte)
	typeByte, err := d.byte()
	if err != nil {
		return m, err
	}
	m.OrderType = engine.OrderType(typeByte)
	if m.Price, err = d.float64(); err != nil {
		return m, err
	}
	if m.Quantity, err = d.uint64(); err != nil {
		return m, err
	}
	if m.Owner, err = d.str(); err != nil {
		return m, err
	}
	return m, nil
}

// CancelOrderMessage requests a cancel_order command.
type CancelOrderMessage struct {
	ClientToken uuid.UUID
	Symbol      string
	OrderID     uint64
}

func (CancelOrderMessage) Type() MessageType { return CancelOrder }

func (m CancelOrderMessage) Encode() []byte {
	e := encoder{}
	e.uint16(uint16(CancelOrder))
	e.uuid(m.ClientToken)
	e.fixed(m.Symbol, symbolWidth)
	e.uint64(m.OrderID)
	return e.bytes()
}

func decodeCancelOrder(d *decoder) (CancelOrderMessage, error) {
	var m CancelOrderMessage
	var err error
	if m.ClientToken, err = d.uuid(); err != nil {
		return m, err
	}
	if m.Symbol, err = d.fixed(symbolWidth); err != nil {
		return m, err
	}
	if m.OrderID, err = d.uint64(); err != nil {
		return m, err
	}
	return m, nil
}

// QueryMessage requests one of the read-only book queries. Fields are
// reused across query types as documented per field.
type QueryMessage struct {
	ClientToken uuid.UUID
	Symbol      string
	QueryType   QueryType
	Side        engine.Side // QueryVWAP only
	Quantity    uint64      // QueryVWAP only
	Levels      uint16      // QueryDepth only
	OrderID     uint64      // QueryGetOrder only
}

func (QueryMessage) Type() MessageType { return Query }

func (m QueryMessage) Encode() []byte {
	e := encoder{}
	e.uint16(uint16(Query))
	e.uuid(m.ClientToken)
	e.fixed(m.Symbol, symbolWidth)
	e.byte(byte(m.QueryType))
	e.byte(byte(m.Side))
	e.uint64(m.Quantity)
	e.uint16(m.Levels)
	e.uint64(m.OrderID)
	return e.bytes()
}

func decodeQuery(d *decoder) (QueryMessage, error) {
	var m QueryMessage
	var err error
	if m.ClientToken, err = d.uuid(); err != nil {
		return m, err
	}
	if m.Symbol, err = d.fixed(symbolWidth); err != nil {
		return m, err
	}
	qt, err := d.byte()
	if err != nil {
		return m, err
	}
	m.QueryType = QueryType(qt)
	sideByte, err := d.byte()
	if err != nil {
		return m, err
	}
	m.Side = engine.Side(sideByte)
	if m.Quantity, err = d.uint64(); err != nil {
		return m, err
	}
	if m.Levels, err = d.uint16(); err != nil {
		return m, err
	}
	if m.OrderID, err = d.uint64(); err != nil {
		return m, err
	}
	return m, nil
}

// LogBookMessage requests a depth snapshot for Symbol; the server answers
// with at most 50 levels a side.
type LogBookMessage struct {
	Symbol string
}

func (LogBookMessage) Type() MessageType { return LogBook }

func (m LogBookMessage) Encode() []byte {
	e := encoder{}
	e.uint16(uint16(LogBook))
	e.fixed(m.Symbol, symbolWidth)
	return e.bytes()
}

func decodeLogBook(d *decoder) (LogBookMessage, error) {
	symbol, err := d.fixed(symbolWidth)
	return LogBookMessage{Symbol: symbol}, err
}

// ErrInvalidMessageType is returned by Decode for an unrecognized leading
// message type tag.
var ErrInvalidMessageType = fmt.Errorf("invalid message type")

// Decode parses the leading MessageType tag off buf and dispatches to the
// matching command decoder.
func Decode(buf []byte) (Message, error) {
	d := newDecoder(buf)
	typeOf, err := d.uint16()
	if err != nil {
		return nil, ErrShortMessage
	}
	switch MessageType(typeOf) {
	case NewOrder:
		return decodeNewOrder(d)
	case CancelOrder:
		return decodeCancelOrder(d)
	case Query:
		return decodeQuery(d)
	case LogBook:
		return decodeLogBook(d)
	default:
		return nil, ErrInvalidMessageType
	}
}
