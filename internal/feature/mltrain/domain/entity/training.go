// Package entity defines the domain models for the mltrain feature.
package entity

import "time"

// TrainingRecord is one ML training progress report from the trading client.
// Records are append-only; the highest training_count is the current state.
type TrainingRecord struct {
	TrainingCount int
	WinTrades     int
	TotalTrades   int
	WinRate       float64
	LastProfit    float64
	Symbol        string
	Timestamp     int64
	CreatedAt     time.Time
}

// GridLevel is one entry of a snapshot's grid_info blob.
type GridLevel struct {
	Level      int     `json:"level"`
	Price      float64 `json:"price"`
	Lots       float64 `json:"lots"`
	Direction  string  `json:"direction"`
	ProfitPips float64 `json:"profit_pips"`
}

// GridStats is the dashboard rollup of the latest snapshot and training state.
type GridStats struct {
	CurrentEquity   float64
	FloatingPL      float64
	OpenGrids       int
	GridDetails     []GridLevel
	MLTrainingCount int
	MLWinRate       float64
	LastUpdate      int64
}
