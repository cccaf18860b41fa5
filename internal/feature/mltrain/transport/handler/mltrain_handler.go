// Package handler はmltrainフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"trading_monitor/internal/feature/mltrain/domain/entity"
	"trading_monitor/internal/feature/mltrain/transport/http/dto"
)

// MLTrainUsecase はML学習統計のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MLTrainUsecase interface {
	RecordTraining(ctx context.Context, payload map[string]any) (entity.TrainingRecord, error)
	GridStats(ctx context.Context) (entity.GridStats, error)
}

// MLTrainHandler はML学習統計のHTTPリクエストを処理します。
type MLTrainHandler struct {
	uc MLTrainUsecase
}

// NewMLTrainHandler は指定されたusecaseでMLTrainHandlerの新しいインスタンスを生成します。
func NewMLTrainHandler(uc MLTrainUsecase) *MLTrainHandler {
	return &MLTrainHandler{uc: uc}
}

// RecordTraining は学習進捗レポートを受け取り、保存します。
//
// エンドポイント例:
// POST /api/ml_train
func (h *MLTrainHandler) RecordTraining(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body format"})
		return
	}

	rec, err := h.uc.RecordTraining(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RecordTrainingResponse{
		Status:        "success",
		Message:       "ML training data saved",
		TrainingCount: rec.TrainingCount,
	})
}

// GridStats はダッシュボード用のグリッド統計を返します。
//
// エンドポイント例:
// GET /api/grid_stats
func (h *MLTrainHandler) GridStats(c *gin.Context) {
	stats, err := h.uc.GridStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	details := make([]dto.GridLevel, 0, len(stats.GridDetails))
	for _, g := range stats.GridDetails {
		details = append(details, dto.GridLevel(g))
	}
	c.JSON(http.StatusOK, dto.GridStatsResponse{
		CurrentEquity:   stats.CurrentEquity,
		FloatingPL:      stats.FloatingPL,
		OpenGrids:       stats.OpenGrids,
		GridDetails:     details,
		MLTrainingCount: stats.MLTrainingCount,
		MLWinRate:       stats.MLWinRate,
		LastUpdate:      stats.LastUpdate,
	})
}
