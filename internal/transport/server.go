// Package transport hosts one or more engine.Book instances behind a TCP
// listener speaking internal/wire's binary protocol. It owns the only
// goroutine that ever calls into a given Book, so the synchronous,
// single-threaded core never needs its own locking.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/jrajath94/orderbook-simulator/internal/engine"
	"github.com/jrajath94/orderbook-simulator/internal/wire"
)

const (
	maxRecvSize       = 4 * 1024
	defaultNWorkers   = 10
	defaultConnDeadln = time.Second
)

var (
	ErrImproperConversion = errors.New("improper task type conversion")
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrClientDoesNotExist = errors.New("client does not exist")
)

// clientSession tracks one connected TCP client.
type clientSession struct {
	conn net.Conn
}

// clientMessage links a decoded message to the connection it arrived on.
type clientMessage struct {
	clientAddress string
	message       wire.Message
}

// Server accepts client connections, decodes wire messages on a worker
// pool, and serializes all book access through a single session-handling
// goroutine.
type Server struct {
	address string
	port    int

	books map[string]*engine.Book

	pool   *WorkerPool
	cancel context.CancelFunc

	sessionsMu sync.Mutex
	sessions   map[string]clientSession

	inbox chan clientMessage
}

// New constructs a server hosting books, keyed by their symbol.
func New(address string, port int, books ...*engine.Book) *Server {
	bySymbol := make(map[string]*engine.Book, len(books))
	for _, b := range books {
		bySymbol[b.Symbol()] = b
	}
	return &Server{
		address:  address,
		port:     port,
		books:    bySymbol,
		pool:     NewWorkerPool(defaultNWorkers),
		sessions: make(map[string]clientSession),
		inbox:    make(chan clientMessage, 1),
	}
}

// Shutdown tears the server down.
func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run accepts connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		log.Error().Err(err).Msg("unable to start listener")
		return
	}
	defer func() {
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("unable to close listener")
		}
	}()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.sessionHandler(t)
	})

	log.Info().Str("address", listener.Addr().String()).Msg("server running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := listener.Accept()
			if err != nil {
				log.Error().Err(err).Msg("error accepting client")
				continue
			}
			log.Info().Str("address", conn.RemoteAddr().String()).Msg("new client connected")
			s.addSession(conn)
			s.pool.AddTask(conn)
		}
	}
}

// sessionHandler is the single goroutine that ever calls into a Book.
func (s *Server) sessionHandler(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case msg := <-s.inbox:
			if err := s.handleMessage(msg); err != nil {
				log.Error().Err(err).Str("client", msg.clientAddress).Msg("error handling message")
			}
		}
	}
}

func (s *Server) handleMessage(cm clientMessage) error {
	switch m := cm.message.(type) {
	case wire.NewOrderMessage:
		return s.handleNewOrder(cm.clientAddress, m)
	case wire.CancelOrderMessage:
		return s.handleCancelOrder(cm.clientAddress, m)
	case wire.QueryMessage:
		return s.handleQuery(cm.clientAddress, m)
	case wire.LogBookMessage:
		return s.handleLogBook(cm.clientAddress, m)
	default:
		return s.sendError(cm.clientAddress, uuid.UUID{}, fmt.Errorf("%w: unexpected message", wire.ErrInvalidMessageType))
	}
}

func (s *Server) handleNewOrder(clientAddress string, m wire.NewOrderMessage) error {
	book, ok := s.books[m.Symbol]
	if !ok {
		return s.sendError(clientAddress, m.ClientToken, fmt.Errorf("%w: %s", ErrUnknownSymbol, m.Symbol))
	}

	price := decimalFromFloat(m.Price)
	snapshot, trades, err := book.SubmitOrder(m.Side, price, m.Quantity, m.OrderType, time.Now())
	if err != nil {
		return s.sendError(clientAddress, m.ClientToken, err)
	}

	if err := s.send(clientAddress, snapshotReport(m.ClientToken, snapshot)); err != nil {
		return err
	}
	for _, trade := range trades {
		if err := s.send(clientAddress, tradeReport(m.ClientToken, trade)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) handleCancelOrder(clientAddress string, m wire.CancelOrderMessage) error {
	book, ok := s.books[m.Symbol]
	if !ok {
		return s.sendError(clientAddress, m.ClientToken, fmt.Errorf("%w: %s", ErrUnknownSymbol, m.Symbol))
	}
	snapshot, err := book.CancelOrder(m.OrderID)
	if err != nil {
		return s.sendError(clientAddress, m.ClientToken, err)
	}
	return s.send(clientAddress, snapshotReport(m.ClientToken, snapshot))
}

func (s *Server) handleQuery(clientAddress string, m wire.QueryMessage) error {
	book, ok := s.books[m.Symbol]
	if !ok {
		return s.sendError(clientAddress, m.ClientToken, fmt.Errorf("%w: %s", ErrUnknownSymbol, m.Symbol))
	}

	switch m.QueryType {
	case wire.QueryBestQuote:
		return s.send(clientAddress, bestQuoteReport(m.ClientToken, book))
	case wire.QueryDepth:
		levels := int(m.Levels)
		if levels <= 0 {
			levels = 10
		}
		bids, asks := book.Depth(levels)
		return s.send(clientAddress, depthReport(m.ClientToken, bids, asks))
	case wire.QueryVWAP:
		price, ok := book.VWAP(m.Side, m.Quantity)
		return s.send(clientAddress, wire.VWAPReport{ClientToken: m.ClientToken, Has: ok, Price: price.Float64()})
	case wire.QueryGetOrder:
		snapshot, err := book.GetOrder(m.OrderID)
		if err != nil {
			return s.sendError(clientAddress, m.ClientToken, err)
		}
		return s.send(clientAddress, snapshotReport(m.ClientToken, snapshot))
	default:
		return s.sendError(clientAddress, m.ClientToken, fmt.Errorf("unknown query type %d", m.QueryType))
	}
}

func (s *Server) handleLogBook(clientAddress string, m wire.LogBookMessage) error {
	book, ok := s.books[m.Symbol]
	if !ok {
		return s.sendError(clientAddress, uuid.UUID{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, m.Symbol))
	}
	bids, asks := book.Depth(50)
	log.Info().
		Str("symbol", m.Symbol).
		Int("bidLevels", len(bids)).
		Int("askLevels", len(asks)).
		Int("orders", book.OrderCount()).
		Int("trades", book.TradeCount()).
		Msg("book snapshot")
	return s.send(clientAddress, depthReport(uuid.UUID{}, bids, asks))
}

func (s *Server) send(clientAddress string, report wire.Report) error {
	s.sessionsMu.Lock()
	session, ok := s.sessions[clientAddress]
	s.sessionsMu.Unlock()
	if !ok {
		return ErrClientDoesNotExist
	}
	_, err := session.conn.Write(report.Encode())
	if err != nil {
		s.removeSession(clientAddress)
	}
	return err
}

func (s *Server) sendError(clientAddress string, token uuid.UUID, cause error) error {
	return s.send(clientAddress, wire.ErrorReport{ClientToken: token, Message: cause.Error()})
}

// handleConnection reads exactly one message off conn, decodes it and
// forwards it to sessionHandler, then re-queues the connection for its
// next message. A read error drops the client session; a message that
// fails to decode is logged and skipped, and the connection is re-queued.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return ErrImproperConversion
	}

	if err := conn.SetDeadline(time.Now().Add(defaultConnDeadln)); err != nil {
		log.Error().Err(err).Str("address", conn.RemoteAddr().String()).Msg("failed to set deadline")
		s.closeSession(conn)
		return nil
	}

	buffer := make([]byte, maxRecvSize)
	select {
	case <-t.Dying():
		return nil
	default:
		n, err := conn.Read(buffer)
		if err != nil {
			log.Debug().Err(err).Str("address", conn.RemoteAddr().String()).Msg("connection closed")
			s.closeSession(conn)
			return nil
		}

		message, err := wire.Decode(buffer[:n])
		if err != nil {
			log.Error().Err(err).Str("address", conn.RemoteAddr().String()).Msg("error parsing message")
			s.pool.AddTask(conn)
			return nil
		}

		s.inbox <- clientMessage{
			clientAddress: conn.RemoteAddr().String(),
			message:       message,
		}
		s.pool.AddTask(conn)
	}
	return nil
}

func (s *Server) addSession(conn net.Conn) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.sessions[conn.RemoteAddr().String()] = clientSession{conn: conn}
}

func (s *Server) removeSession(address string) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	delete(s.sessions, address)
}

func (s *Server) closeSession(conn net.Conn) {
	address := conn.RemoteAddr().String()
	s.removeSession(address)
	if err := conn.Close(); err != nil {
		log.Debug().Err(err).Str("address", address).Msg("error closing connection")
	}
}
