// Package dto defines the HTTP response shapes for the mltrain feature.
package dto

// RecordTrainingResponse is the success body of a training report.
type RecordTrainingResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	TrainingCount int    `json:"training_count"`
}

// GridStatsResponse はグリッド統計ダッシュボードのレスポンスDTOです。
type GridStatsResponse struct {
	CurrentEquity   float64     `json:"current_equity"`
	FloatingPL      float64     `json:"floating_pl"`
	OpenGrids       int         `json:"open_grids"`
	GridDetails     []GridLevel `json:"grid_details"`
	MLTrainingCount int         `json:"ml_training_count"`
	MLWinRate       float64     `json:"ml_win_rate"`
	LastUpdate      int64       `json:"last_update"`
}

// GridLevel is one grid entry within GridStatsResponse.
type GridLevel struct {
	Level      int     `json:"level"`
	Price      float64 `json:"price"`
	Lots       float64 `json:"lots"`
	Direction  string  `json:"direction"`
	ProfitPips float64 `json:"profit_pips"`
}
