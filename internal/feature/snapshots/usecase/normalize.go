// Package usecase はスナップショット取り込みと集約のビジネスロジックを実装します。
package usecase

import (
	"fmt"
	"strings"
	"time"

	"trading_monitor/internal/feature/snapshots/domain"
	"trading_monitor/internal/feature/snapshots/domain/entity"
	"trading_monitor/internal/shared/coerce"
)

// Candidate key lists per canonical field, checked in order. New client
// synonyms are additions to these tables, not new code paths.
var (
	symbolKeys    = []string{"symbol", "Symbol", "SYMBOL", "instrument", "pair"}
	timestampKeys = []string{"timestamp", "Timestamp", "time", "ts"}
	ticketKeys    = []string{"ticket", "Ticket"}
)

// timestampLayouts are the calendar formats accepted when a timestamp field is
// not integer-parseable.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// floatFields maps payload keys to snapshot fields that default to 0 when the
// value is absent or unparsable.
var floatFields = []struct {
	key string
	set func(*entity.TradeSnapshot, float64)
}{
	{"equity", func(s *entity.TradeSnapshot, v float64) { s.Equity = v }},
	{"balance", func(s *entity.TradeSnapshot, v float64) { s.Balance = v }},
	{"profit", func(s *entity.TradeSnapshot, v float64) { s.Profit = v }},
	{"current_price", func(s *entity.TradeSnapshot, v float64) { s.CurrentPrice = v }},
	{"bid_price", func(s *entity.TradeSnapshot, v float64) { s.BidPrice = v }},
	{"ask_price", func(s *entity.TradeSnapshot, v float64) { s.AskPrice = v }},
	{"spread", func(s *entity.TradeSnapshot, v float64) { s.Spread = v }},
	{"ml_confidence", func(s *entity.TradeSnapshot, v float64) { s.MLConfidence = v }},
	{"total_profit_pips", func(s *entity.TradeSnapshot, v float64) { s.TotalProfitPips = v }},
	{"total_profit_usd", func(s *entity.TradeSnapshot, v float64) { s.TotalProfitUSD = v }},
}

// Normalize coerces an arbitrary inbound payload into a TradeSnapshot.
// Every field-level failure degrades to the field's documented default; the
// only fatal case is a payload with no resolvable symbol and no ticket to
// synthesize one from, which returns domain.ErrMissingSymbol.
//
// Normalize is a pure transform of (payload, now); the clock is passed in so
// generated timestamps are reproducible in tests.
func Normalize(payload map[string]any, now time.Time) (entity.TradeSnapshot, error) {
	var snap entity.TradeSnapshot

	snap.Ticket = resolveTicket(payload)

	symbol, ok := resolveSymbol(payload)
	if !ok {
		if snap.Ticket == 0 {
			return entity.TradeSnapshot{}, domain.ErrMissingSymbol
		}
		// Ticket but no symbol: synthesize a placeholder so the report is
		// never silently dropped.
		symbol = fmt.Sprintf("TICKET-%d", snap.Ticket)
	}
	snap.Symbol = symbol

	snap.Timestamp = resolveTimestamp(payload, now)

	for _, f := range floatFields {
		f.set(&snap, coerce.FloatOr(payload[f.key], 0))
	}
	snap.OpenTrades = int(coerce.IntOr(payload["open_trades"], 0))
	if snap.OpenTrades < 0 {
		snap.OpenTrades = 0
	}
	snap.MLTrained = int(coerce.IntOr(payload["ml_trained"], 0))
	if snap.MLTrained != 0 {
		snap.MLTrained = 1
	}
	if s, ok := coerce.String(payload["grid_info"]); ok {
		snap.GridInfo = s
	}

	snap.Trades = resolveTrades(payload["trades"])

	return snap, nil
}

// lookup returns the first present, non-nil, non-empty value among the
// candidate keys.
func lookup(payload map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		v, ok := payload[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func resolveSymbol(payload map[string]any) (string, bool) {
	v, ok := lookup(payload, symbolKeys)
	if !ok {
		return "", false
	}
	s, ok := coerce.String(v)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func resolveTicket(payload map[string]any) int64 {
	v, ok := lookup(payload, ticketKeys)
	if !ok {
		return 0
	}
	return coerce.IntOr(v, 0)
}

// resolveTimestamp tries integer parsing first, then calendar-date parsing,
// and finally substitutes the invocation time.
func resolveTimestamp(payload map[string]any, now time.Time) int64 {
	v, ok := lookup(payload, timestampKeys)
	if !ok {
		return now.Unix()
	}
	if i, ok := coerce.Int(v); ok && i > 0 {
		return i
	}
	if s, ok := v.(string); ok {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
				return t.Unix()
			}
		}
	}
	return now.Unix()
}

// resolveTrades coerces the trades value element-wise. Anything that is not a
// sequence becomes an empty slice; malformed elements are skipped.
func resolveTrades(v any) []entity.OpenPosition {
	out := []entity.OpenPosition{}
	seq, ok := v.([]any)
	if !ok {
		return out
	}
	for _, el := range seq {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		pos := entity.OpenPosition{
			Ticket:    coerce.IntOr(m["ticket"], 0),
			Lots:      coerce.FloatOr(m["lots"], 0),
			OpenPrice: coerce.FloatOr(m["open_price"], 0),
			Profit:    coerce.FloatOr(m["profit"], 0),
		}
		if s, ok := coerce.String(m["type"]); ok {
			pos.Type = s
		}
		out = append(out, pos)
	}
	return out
}
