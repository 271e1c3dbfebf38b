// Command exchange-client sends submit/cancel/query commands to an
// exchange-server and prints the reports it receives.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jrajath94/orderbook-simulator/internal/engine"
	"github.com/jrajath94/orderbook-simulator/internal/wire"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "address of the exchange server")
	owner := flag.String("owner", "", "owner username (compulsory for 'place')")
	action := flag.String("action", "place", "action to perform: ['place', 'cancel', 'depth', 'quote', 'vwap', 'get', 'log']")

	symbol := flag.String("symbol", "SIM", "ticker symbol (max 8 chars)")
	sideStr := flag.String("side", "buy", "order side: 'buy' or 'sell'")
	typeStr := flag.String("type", "limit", "order type: 'limit', 'market' or 'ioc'")
	price := flag.Float64("price", 100.0, "limit price")
	qtyStr := flag.String("qty", "10", "quantity or comma-separated list (e.g. 10,20,50)")

	orderID := flag.Uint64("order-id", 0, "order id to cancel or fetch")
	levels := flag.Uint("levels", 10, "number of depth levels to request")

	flag.Parse()

	if *owner == "" && strings.ToLower(*action) == "place" {
		fmt.Println("Error: -owner is required for 'place'.")
		flag.Usage()
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		log.Fatalf("failed to connect to server at %s: %v", *serverAddr, err)
	}
	defer conn.Close()
	fmt.Printf("Connected to %s\n", *serverAddr)

	go readReports(conn)

	side := engine.Buy
	if strings.ToLower(*sideStr) == "sell" {
		side = engine.Sell
	}

	orderType := engine.Limit
	switch strings.ToLower(*typeStr) {
	case "market":
		orderType = engine.Market
	case "ioc":
		orderType = engine.IOC
	}

	switch strings.ToLower(*action) {
	case "place":
		for _, qty := range parseQuantities(*qtyStr) {
			msg := wire.NewOrderMessage{
				ClientToken: uuid.New(),
				Symbol:      *symbol,
				Side:        side,
				OrderType:   orderType,
				Price:       *price,
				Quantity:    qty,
				Owner:       *owner,
			}
			if _, err := conn.Write(msg.Encode()); err != nil {
				log.Printf("failed to place order (qty %d): %v", qty, err)
				continue
			}
			fmt.Printf("-> sent %s %s order: %s %d @ %.2f\n", orderType, side, *symbol, qty, *price)
			time.Sleep(5 * time.Millisecond)
		}

	case "cancel":
		msg := wire.CancelOrderMessage{ClientToken: uuid.New(), Symbol: *symbol, OrderID: *orderID}
		if _, err := conn.Write(msg.Encode()); err != nil {
			log.Printf("failed to send cancel request: %v", err)
		} else {
			fmt.Printf("-> sent cancel request for order %d\n", *orderID)
		}

	case "quote":
		sendQuery(conn, wire.QueryMessage{ClientToken: uuid.New(), Symbol: *symbol, QueryType: wire.QueryBestQuote})

	case "depth":
		sendQuery(conn, wire.QueryMessage{ClientToken: uuid.New(), Symbol: *symbol, QueryType: wire.QueryDepth, Levels: uint16(*levels)})

	case "vwap":
		qty := parseQuantities(*qtyStr)
		if len(qty) == 0 {
			log.Fatal("error: -qty is required for 'vwap'")
		}
		sendQuery(conn, wire.QueryMessage{ClientToken: uuid.New(), Symbol: *symbol, QueryType: wire.QueryVWAP, Side: side, Quantity: qty[0]})

	case "get":
		sendQuery(conn, wire.QueryMessage{ClientToken: uuid.New(), Symbol: *symbol, QueryType: wire.QueryGetOrder, OrderID: *orderID})

	case "log":
		msg := wire.LogBookMessage{Symbol: *symbol}
		if _, err := conn.Write(msg.Encode()); err != nil {
			log.Printf("failed to send log request: %v", err)
		} else {
			fmt.Println("-> sent log request")
		}

	default:
		log.Fatalf("unknown action: %s", *action)
	}

	fmt.Println("\nListening for reports... (press Ctrl+C to exit)")
	select {}
}

func sendQuery(conn net.Conn, msg wire.QueryMessage) {
	if _, err := conn.Write(msg.Encode()); err != nil {
		log.Printf("failed to send query: %v", err)
		return
	}
	fmt.Printf("-> sent query %d for %s\n", msg.QueryType, msg.Symbol)
}

// parseQuantities splits a comma-separated string into a slice of uint64.
func parseQuantities(input string) []uint64 {
	var result []uint64
	for _, p := range strings.Split(input, ",") {
		p = strings.TrimSpace(p)
		if val, err := strconv.ParseUint(p, 10, 64); err == nil {
			result = append(result, val)
		} else {
			log.Printf("warning: invalid quantity %q, skipping", p)
		}
	}
	return result
}

// readReports continuously reads and prints reports from the server.
func readReports(conn net.Conn) {
	buffer := make([]byte, 4*1024)
	for {
		n, err := conn.Read(buffer)
		if err != nil {
			log.Printf("connection lost: %v", err)
			os.Exit(0)
		}

		report, err := wire.DecodeReport(buffer[:n])
		if err != nil {
			log.Printf("error decoding report: %v", err)
			continue
		}

		switch r := report.(type) {
		case wire.ExecutionReport:
			fmt.Printf("\n[ORDER] id=%d side=%s type=%s status=%s price=%.2f remaining=%d/%d\n",
				r.OrderID, r.Side, r.OrderType, r.Status, r.Price, r.Remaining, r.Quantity)
		case wire.TradeReport:
			fmt.Printf("\n[TRADE] id=%d buy=%d sell=%d price=%.2f qty=%d\n",
				r.TradeID, r.BuyOrderID, r.SellOrderID, r.Price, r.Quantity)
		case wire.BestQuoteReport:
			fmt.Printf("\n[QUOTE] bid=%v ask=%v mid=%v spread=%v\n",
				optionalFloat(r.HasBid, r.Bid), optionalFloat(r.HasAsk, r.Ask),
				optionalFloat(r.HasMid, r.Mid), optionalFloat(r.HasSpread, r.Spread))
		case wire.DepthReport:
			fmt.Printf("\n[DEPTH] bids=%v asks=%v\n", r.Bids, r.Asks)
		case wire.VWAPReport:
			fmt.Printf("\n[VWAP] %v\n", optionalFloat(r.Has, r.Price))
		case wire.ErrorReport:
			fmt.Printf("\n[ERROR] %s\n", r.Message)
		}
	}
}

func optionalFloat(has bool, v float64) string {
	if !has {
		return "none"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
