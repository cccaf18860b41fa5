package usecase

import (
	"context"
	"log/slog"
	"time"

	"trading_monitor/internal/feature/snapshots/domain/entity"
)

// UpsertKey identifies the stored record an inbound snapshot replaces. Reports
// carrying a broker ticket are keyed by (symbol, ticket) so retransmissions of
// the same ticket overwrite in place; ticketless reports are keyed by
// (symbol, timestamp).
type UpsertKey struct {
	Symbol    string
	Ticket    int64
	Timestamp int64
}

// ByTicket reports whether the ticket-shaped key applies.
func (k UpsertKey) ByTicket() bool { return k.Ticket != 0 }

// KeyFor resolves the upsert key shape for a snapshot, once per record.
func KeyFor(snap entity.TradeSnapshot) UpsertKey {
	if snap.Ticket != 0 {
		return UpsertKey{Symbol: snap.Symbol, Ticket: snap.Ticket}
	}
	return UpsertKey{Symbol: snap.Symbol, Timestamp: snap.Timestamp}
}

// UpsertResult carries the store's matched/modified/upserted counts.
type UpsertResult struct {
	Matched  int64
	Modified int64
	Upserted int64
}

// SnapshotRepository abstracts the document store holding trade snapshots.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type SnapshotRepository interface {
	// Upsert replaces or inserts the full record identified by key.
	Upsert(ctx context.Context, key UpsertKey, snap entity.TradeSnapshot) (UpsertResult, error)
	// FindAll returns every stored snapshot, newest first.
	FindAll(ctx context.Context) ([]entity.TradeSnapshot, error)
	// FindLatest returns the most recent snapshot for symbol, or for any
	// symbol when symbol is empty. A missing record is (nil, nil).
	FindLatest(ctx context.Context, symbol string) (*entity.TradeSnapshot, error)
	// FindRecent returns up to limit snapshots ordered by update time, newest
	// first, optionally filtered by symbol.
	FindRecent(ctx context.Context, symbol string, limit int) ([]entity.TradeSnapshot, error)
}

// IngestUsecase はスナップショットの正規化と永続化のユースケースを定義します。
type IngestUsecase struct {
	repo SnapshotRepository
	now  func() time.Time
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(repo SnapshotRepository, now func() time.Time) *IngestUsecase {
	if now == nil {
		now = time.Now
	}
	return &IngestUsecase{repo: repo, now: now}
}

// Ingest normalizes an inbound payload and upserts the resulting snapshot.
// The returned snapshot carries the server receive metadata that was stored.
func (iu *IngestUsecase) Ingest(ctx context.Context, payload map[string]any) (entity.TradeSnapshot, UpsertResult, error) {
	now := iu.now()

	snap, err := Normalize(payload, now)
	if err != nil {
		return entity.TradeSnapshot{}, UpsertResult{}, err
	}
	snap.ServerReceived = now.Unix()
	snap.UpdatedAt = now

	res, err := iu.repo.Upsert(ctx, KeyFor(snap), snap)
	if err != nil {
		return entity.TradeSnapshot{}, UpsertResult{}, err
	}

	slog.Info("snapshot upserted",
		"symbol", snap.Symbol,
		"ticket", snap.Ticket,
		"matched", res.Matched,
		"upserted", res.Upserted,
	)
	return snap, res, nil
}

// OverviewUsecase はスナップショットの集約読み取りのユースケースを定義します。
type OverviewUsecase struct {
	repo SnapshotRepository
	now  func() time.Time
}

// NewOverviewUsecase は新しい OverviewUsecase を作成します。
func NewOverviewUsecase(repo SnapshotRepository, now func() time.Time) *OverviewUsecase {
	if now == nil {
		now = time.Now
	}
	return &OverviewUsecase{repo: repo, now: now}
}

// AllSymbols reads every stored snapshot and consolidates it into the
// latest-per-symbol map and summary. The read is not transactionally
// isolated; writes concurrent with the scan may or may not be reflected.
func (ou *OverviewUsecase) AllSymbols(ctx context.Context) (ConsolidateResult, error) {
	snaps, err := ou.repo.FindAll(ctx)
	if err != nil {
		return ConsolidateResult{}, err
	}
	return Consolidate(snaps, ou.now()), nil
}

// RecentResult is the outcome of a recent-trades read.
type RecentResult struct {
	Trades []entity.TradeSnapshot
	Latest *entity.TradeSnapshot // newest of Trades, nil when empty
}

// recentLimit は直近スナップショット読み取りの固定上限です。
const recentLimit = 10

// Recent returns the newest stored snapshots, optionally filtered by symbol.
func (ou *OverviewUsecase) Recent(ctx context.Context, symbol string) (RecentResult, error) {
	trades, err := ou.repo.FindRecent(ctx, symbol, recentLimit)
	if err != nil {
		return RecentResult{}, err
	}
	res := RecentResult{Trades: trades}
	if len(trades) > 0 {
		res.Latest = &trades[0]
	}
	return res, nil
}
