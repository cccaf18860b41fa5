// Package usecase はML学習統計とグリッド統計のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"trading_monitor/internal/feature/mltrain/domain/entity"
	snapentity "trading_monitor/internal/feature/snapshots/domain/entity"
	"trading_monitor/internal/shared/coerce"
)

// TrainingRepository abstracts the document store holding training records.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type TrainingRepository interface {
	// Insert appends one training record.
	Insert(ctx context.Context, rec entity.TrainingRecord) error
	// FindTop returns the record with the highest training count, or
	// (nil, nil) when none exist.
	FindTop(ctx context.Context) (*entity.TrainingRecord, error)
}

// LatestSnapshotReader is the narrow slice of the snapshot store this feature
// needs: the newest snapshot across all symbols.
type LatestSnapshotReader interface {
	FindLatest(ctx context.Context, symbol string) (*snapentity.TradeSnapshot, error)
}

// MLTrainUsecase はML学習レポートの記録とグリッド統計の組み立てを行います。
type MLTrainUsecase struct {
	repo      TrainingRepository
	snapshots LatestSnapshotReader
	now       func() time.Time
}

// NewMLTrainUsecase は新しい MLTrainUsecase を作成します。
func NewMLTrainUsecase(repo TrainingRepository, snapshots LatestSnapshotReader, now func() time.Time) *MLTrainUsecase {
	if now == nil {
		now = time.Now
	}
	return &MLTrainUsecase{repo: repo, snapshots: snapshots, now: now}
}

// RecordTraining coerces an inbound training payload and appends it to the
// store. Field coercion follows the snapshot policy: malformed values become
// zero defaults, never a rejection.
func (u *MLTrainUsecase) RecordTraining(ctx context.Context, payload map[string]any) (entity.TrainingRecord, error) {
	now := u.now()
	rec := entity.TrainingRecord{
		TrainingCount: int(coerce.IntOr(payload["training_count"], 0)),
		WinTrades:     int(coerce.IntOr(payload["win_trades"], 0)),
		TotalTrades:   int(coerce.IntOr(payload["total_trades"], 0)),
		WinRate:       coerce.FloatOr(payload["win_rate"], 0),
		LastProfit:    coerce.FloatOr(payload["last_profit"], 0),
		Timestamp:     coerce.IntOr(payload["timestamp"], now.Unix()),
		CreatedAt:     now,
	}
	if s, ok := coerce.String(payload["symbol"]); ok {
		rec.Symbol = strings.TrimSpace(s)
	}
	if err := u.repo.Insert(ctx, rec); err != nil {
		return entity.TrainingRecord{}, err
	}
	return rec, nil
}

// GridStats assembles the dashboard rollup from the newest snapshot and the
// top training record. Missing data contributes zero values, not errors.
func (u *MLTrainUsecase) GridStats(ctx context.Context) (entity.GridStats, error) {
	var stats entity.GridStats
	stats.GridDetails = []entity.GridLevel{}

	latest, err := u.snapshots.FindLatest(ctx, "")
	if err != nil {
		return entity.GridStats{}, err
	}
	if latest != nil {
		stats.CurrentEquity = latest.Equity
		stats.FloatingPL = latest.Profit
		stats.OpenGrids = latest.OpenTrades
		stats.LastUpdate = latest.Timestamp
		stats.GridDetails = parseGridInfo(latest.GridInfo)
	}

	top, err := u.repo.FindTop(ctx)
	if err != nil {
		return entity.GridStats{}, err
	}
	if top != nil {
		stats.MLTrainingCount = top.TrainingCount
		stats.MLWinRate = top.WinRate
	}

	return stats, nil
}

// parseGridInfo decodes the snapshot's optional grid_info JSON blob.
// Absent or unparsable blobs yield an empty list.
func parseGridInfo(blob string) []entity.GridLevel {
	out := []entity.GridLevel{}
	if blob == "" {
		return out
	}
	if err := json.Unmarshal([]byte(blob), &out); err != nil {
		return []entity.GridLevel{}
	}
	return out
}
