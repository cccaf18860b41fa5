// Package entity defines the domain models for the snapshots feature.
package entity

import "time"

// TradeSnapshot represents one instrument's account and position state as
// reported by the trading client at a point in time. Only the latest snapshot
// per symbol is authoritative; later snapshots supersede earlier ones, they
// never mutate them.
type TradeSnapshot struct {
	Symbol    string // Instrument name (e.g., "XAUUSD"); primary key component
	Timestamp int64  // Client-side report time, seconds since epoch
	Ticket    int64  // Broker ticket id; 0 when the report carries none

	Equity       float64
	Balance      float64
	Profit       float64 // Floating profit/loss
	CurrentPrice float64
	BidPrice     float64
	AskPrice     float64
	Spread       float64

	OpenTrades   int
	MLConfidence float64 // Model confidence, 0..1
	MLTrained    int     // 0/1 flag

	TotalProfitPips float64
	TotalProfitUSD  float64

	Trades   []OpenPosition // Individual open positions; never nil after normalization
	GridInfo string         // Optional JSON blob describing the active grid

	ServerReceived int64     // Server-side receive time, seconds since epoch
	UpdatedAt      time.Time // Last upsert time
}

// OpenPosition is one open position inside a snapshot's trades list.
type OpenPosition struct {
	Ticket    int64
	Type      string
	Lots      float64
	OpenPrice float64
	Profit    float64
}

// SymbolSummary is the cross-instrument rollup derived from the
// latest-per-symbol set. It is recomputed on every aggregate read and never
// persisted.
type SymbolSummary struct {
	TotalSymbols    int
	TotalOpenTrades int
	TotalProfit     string // Sum of floating profit, formatted to 2 decimals
	ServerTime      int64
}
