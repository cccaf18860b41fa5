// Package dto defines the HTTP response shapes for the snapshots feature.
package dto

// SnapshotItem は1インストゥルメント分の最新状態のレスポンスDTOです。
type SnapshotItem struct {
	Symbol          string         `json:"symbol"`
	Timestamp       int64          `json:"timestamp"`
	Ticket          int64          `json:"ticket,omitempty"`
	Equity          float64        `json:"equity"`
	Balance         float64        `json:"balance"`
	Profit          float64        `json:"profit"`
	CurrentPrice    float64        `json:"current_price"`
	BidPrice        float64        `json:"bid_price"`
	AskPrice        float64        `json:"ask_price"`
	Spread          float64        `json:"spread"`
	OpenTrades      int            `json:"open_trades"`
	MLConfidence    float64        `json:"ml_confidence"`
	MLTrained       int            `json:"ml_trained"`
	TotalProfitPips float64        `json:"total_profit_pips"`
	TotalProfitUSD  float64        `json:"total_profit_usd"`
	Trades          []PositionItem `json:"trades"`
}

// PositionItem は個別ポジションのレスポンスDTOです。
type PositionItem struct {
	Ticket    int64   `json:"ticket"`
	Type      string  `json:"type"`
	Lots      float64 `json:"lots"`
	OpenPrice float64 `json:"open_price"`
	Profit    float64 `json:"profit"`
}

// Summary はシンボル横断の集計のレスポンスDTOです。
type Summary struct {
	TotalSymbols    int    `json:"total_symbols"`
	TotalOpenTrades int    `json:"total_open_trades"`
	TotalProfit     string `json:"total_profit"`
	ServerTime      int64  `json:"server_time"`
}

// UpdateTradeData echoes back what the store reported for an upsert.
type UpdateTradeData struct {
	Symbol   string `json:"symbol"`
	Ticket   int64  `json:"ticket,omitempty"`
	Matched  int64  `json:"matched"`
	Modified int64  `json:"modified"`
	Upserted int64  `json:"upserted"`
}

// UpdateTradeResponse is the success body of the ingest operation.
type UpdateTradeResponse struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Timestamp int64           `json:"timestamp"`
	Data      UpdateTradeData `json:"data"`
}

// ValidationErrorResponse echoes the rejected payload back for diagnosis.
type ValidationErrorResponse struct {
	Error    string         `json:"error"`
	Received map[string]any `json:"received"`
}

// ErrorResponse is the generic server-side failure body.
type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
