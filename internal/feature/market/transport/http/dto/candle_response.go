// Package dto defines the HTTP response shapes for the market feature.
package dto

// CandleItem はロウソク足データのレスポンスDTOです。
type CandleItem struct {
	Time   int64   `json:"time"`   // バー開始時刻（エポック秒）
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}

// MissingSymbolResponse is returned when the symbol query parameter is absent.
type MissingSymbolResponse struct {
	Error            string   `json:"error"`
	Example          string   `json:"example"`
	AvailableSymbols []string `json:"available_symbols"`
}
