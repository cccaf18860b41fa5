// Package handler はsnapshotsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trading_monitor/internal/feature/snapshots/domain"
	"trading_monitor/internal/feature/snapshots/domain/entity"
	"trading_monitor/internal/feature/snapshots/transport/http/dto"
	"trading_monitor/internal/feature/snapshots/usecase"
)

// IngestUsecase はスナップショット取り込みのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IngestUsecase interface {
	Ingest(ctx context.Context, payload map[string]any) (entity.TradeSnapshot, usecase.UpsertResult, error)
}

// OverviewUsecase はスナップショットの集約読み取りのユースケースインターフェースを定義します。
type OverviewUsecase interface {
	AllSymbols(ctx context.Context) (usecase.ConsolidateResult, error)
	Recent(ctx context.Context, symbol string) (usecase.RecentResult, error)
}

// SnapshotHandler はスナップショットのHTTPリクエストを処理します。
type SnapshotHandler struct {
	ingest   IngestUsecase
	overview OverviewUsecase
}

// NewSnapshotHandler は指定されたusecaseでSnapshotHandlerの新しいインスタンスを生成します。
func NewSnapshotHandler(ingest IngestUsecase, overview OverviewUsecase) *SnapshotHandler {
	return &SnapshotHandler{ingest: ingest, overview: overview}
}

// UpdateTrade は取引クライアントからのスナップショット報告を受け取り、正規化して保存します。
//
// エンドポイント例:
// POST /api/update_trade
func (h *SnapshotHandler) UpdateTrade(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:    "invalid body format",
			Received: nil,
		})
		return
	}

	snap, res, err := h.ingest.Ingest(c.Request.Context(), payload)
	if errors.Is(err, domain.ErrMissingSymbol) {
		// バリデーション失敗時は診断のために受信ペイロードをそのまま返す
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:    "invalid symbol",
			Received: payload,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:    "error",
			Message:   err.Error(),
			Timestamp: time.Now().Unix(),
		})
		return
	}

	action := "updated"
	if res.Upserted > 0 {
		action = "saved"
	}
	c.JSON(http.StatusOK, dto.UpdateTradeResponse{
		Status:    "success",
		Message:   fmt.Sprintf("Trade data %s for %s", action, snap.Symbol),
		Timestamp: snap.ServerReceived,
		Data: dto.UpdateTradeData{
			Symbol:   snap.Symbol,
			Ticket:   snap.Ticket,
			Matched:  res.Matched,
			Modified: res.Modified,
			Upserted: res.Upserted,
		},
	})
}

// GetAllSymbols は全シンボルの最新状態マップとサマリーを返します。
//
// エンドポイント例:
// GET /api/get_all_symbols
func (h *SnapshotHandler) GetAllSymbols(c *gin.Context) {
	res, err := h.overview.AllSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:    "error",
			Message:   err.Error(),
			Timestamp: time.Now().Unix(),
		})
		return
	}

	if res.Status == usecase.StatusNoData {
		c.JSON(http.StatusOK, gin.H{
			"status":    usecase.StatusNoData,
			"message":   "No trading data found",
			"timestamp": res.Summary.ServerTime,
			"symbols":   []string{},
		})
		return
	}

	// シンボル名をキーとする動的マップに _summary と status を同居させる
	// （ダッシュボード互換のレスポンス形状）
	out := gin.H{
		"status":   res.Status,
		"_summary": toSummary(res.Summary),
	}
	for symbol, snap := range res.Latest {
		out[symbol] = toItem(snap)
	}
	c.JSON(http.StatusOK, out)
}

// GetTrades は直近のスナップショットの一覧を返します。
//
// エンドポイント例:
// GET /api/get_trades?symbol=XAUUSD
func (h *SnapshotHandler) GetTrades(c *gin.Context) {
	symbol := c.Query("symbol")

	res, err := h.overview.Recent(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:    "error",
			Message:   err.Error(),
			Timestamp: time.Now().Unix(),
		})
		return
	}

	trades := make([]dto.SnapshotItem, 0, len(res.Trades))
	for _, s := range res.Trades {
		trades = append(trades, toItem(s))
	}
	var latest *dto.SnapshotItem
	if res.Latest != nil {
		item := toItem(*res.Latest)
		latest = &item
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"count":     len(trades),
		"latest":    latest,
		"trades":    trades,
		"timestamp": time.Now().Unix(),
	})
}

func toItem(s entity.TradeSnapshot) dto.SnapshotItem {
	trades := make([]dto.PositionItem, 0, len(s.Trades))
	for _, p := range s.Trades {
		trades = append(trades, dto.PositionItem(p))
	}
	return dto.SnapshotItem{
		Symbol:          s.Symbol,
		Timestamp:       s.Timestamp,
		Ticket:          s.Ticket,
		Equity:          s.Equity,
		Balance:         s.Balance,
		Profit:          s.Profit,
		CurrentPrice:    s.CurrentPrice,
		BidPrice:        s.BidPrice,
		AskPrice:        s.AskPrice,
		Spread:          s.Spread,
		OpenTrades:      s.OpenTrades,
		MLConfidence:    s.MLConfidence,
		MLTrained:       s.MLTrained,
		TotalProfitPips: s.TotalProfitPips,
		TotalProfitUSD:  s.TotalProfitUSD,
		Trades:          trades,
	}
}

func toSummary(s entity.SymbolSummary) dto.Summary {
	return dto.Summary{
		TotalSymbols:    s.TotalSymbols,
		TotalOpenTrades: s.TotalOpenTrades,
		TotalProfit:     s.TotalProfit,
		ServerTime:      s.ServerTime,
	}
}
