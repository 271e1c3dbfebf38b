// Command exchange-server runs a TCP-hosted order book matching engine.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/jrajath94/orderbook-simulator/internal/engine"
	"github.com/jrajath94/orderbook-simulator/internal/transport"
)

func main() {
	address := flag.String("address", "0.0.0.0", "address to listen on")
	port := flag.Int("port", 9001, "port to listen on")
	symbol := flag.String("symbol", "SIM", "ticker symbol hosted by this book")
	tickSize := flag.String("tick-size", "0.01", "minimum quotable price increment")
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	tick, err := decimal.NewFromString(*tickSize)
	if err != nil {
		panic(err)
	}

	book, err := engine.NewBook(*symbol, tick)
	if err != nil {
		panic(err)
	}

	// Setup the TCP server hosting the book.
	srv := transport.New(*address, *port, book)

	go srv.Run(ctx)
	// Block on running the server.
	<-ctx.Done()
}
