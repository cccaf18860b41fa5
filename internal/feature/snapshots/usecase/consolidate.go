package usecase

import (
	"math"
	"strconv"
	"time"

	"trading_monitor/internal/feature/snapshots/domain/entity"
)

// Consolidation result statuses. An empty store is a normal outcome, not an
// error.
const (
	StatusSuccess = "success"
	StatusNoData  = "no_data"
)

// ConsolidateResult is the outcome of reducing all stored snapshots to one
// authoritative latest record per symbol.
type ConsolidateResult struct {
	Status  string
	Latest  map[string]entity.TradeSnapshot
	Summary entity.SymbolSummary
}

// Consolidate reduces snaps to the latest record per symbol and derives the
// cross-instrument summary in a single linear pass over the retained set.
//
// The strictly greater timestamp wins; when two snapshots for a symbol share a
// timestamp, the first one encountered in input order is kept, so the result
// is deterministic for a given read ordering. Records with an empty symbol
// are skipped, not counted.
func Consolidate(snaps []entity.TradeSnapshot, now time.Time) ConsolidateResult {
	latest := make(map[string]entity.TradeSnapshot)
	for _, s := range snaps {
		if s.Symbol == "" {
			continue
		}
		cur, ok := latest[s.Symbol]
		if !ok || s.Timestamp > cur.Timestamp {
			latest[s.Symbol] = s
		}
	}

	var openTrades int
	var profit float64
	for _, s := range latest {
		openTrades += s.OpenTrades
		profit += s.Profit
	}

	status := StatusSuccess
	if len(latest) == 0 {
		status = StatusNoData
	}

	return ConsolidateResult{
		Status: status,
		Latest: latest,
		Summary: entity.SymbolSummary{
			TotalSymbols:    len(latest),
			TotalOpenTrades: openTrades,
			// Round once on the final sum, not per record.
			TotalProfit: strconv.FormatFloat(math.Round(profit*100)/100, 'f', 2, 64),
			ServerTime:  now.Unix(),
		},
	}
}
