// Package handler はmarketフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"trading_monitor/internal/feature/market/domain/entity"
	"trading_monitor/internal/feature/market/transport/http/dto"
	"trading_monitor/internal/feature/market/usecase"
)

const (
	// DefaultTimeframe はチャートリクエストのデフォルト時間足です。
	DefaultTimeframe = "1m"
	// DefaultLimit はデフォルトのロウソク足返却本数です。
	DefaultLimit = 100
	// MaxLimit はロウソク足の最大返却本数です。
	MaxLimit = 1000
)

// MarketUsecase はチャートデータ供給のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketUsecase interface {
	GetOrCompute(ctx context.Context, symbol, timeframe string, count int) []entity.Candle
}

// MarketHandler は合成チャートデータのHTTPリクエストを処理します。
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler は指定されたusecaseでMarketHandlerの新しいインスタンスを生成します。
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// GetMarketData はシンボルと時間足を受け取り、合成ロウソク足の配列をJSONで返します。
//
// エンドポイント例:
// GET /api/market_data?symbol=XAUUSD&timeframe=1m&limit=100
func (h *MarketHandler) GetMarketData(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		symbols := usecase.Symbols()
		sort.Strings(symbols)
		c.JSON(http.StatusBadRequest, dto.MissingSymbolResponse{
			Error:            "Symbol parameter is required",
			Example:          "/api/market_data?symbol=XAUUSD&timeframe=1m&limit=100",
			AvailableSymbols: symbols,
		})
		return
	}

	timeframe := c.DefaultQuery("timeframe", DefaultTimeframe)
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	// 文字列を整数に変換（失敗時は0になり、下のクランプでデフォルトに落ちる）
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	candles := h.uc.GetOrCompute(c.Request.Context(), symbol, timeframe, limit)

	out := make([]dto.CandleItem, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleItem(x))
	}
	c.JSON(http.StatusOK, out)
}
