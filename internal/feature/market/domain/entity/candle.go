// Package entity defines the domain models for the market feature.
package entity

// Candle represents one OHLCV bar of a synthetic price series.
// Every bar satisfies low ≤ min(open, close) and high ≥ max(open, close).
type Candle struct {
	Time   int64   // Bar start, seconds since epoch, bucketed to the timeframe
	Open   float64 // Opening price, 5 decimal precision
	High   float64 // Highest price
	Low    float64 // Lowest price
	Close  float64 // Closing price
	Volume int64   // Synthetic volume, non-negative
}
