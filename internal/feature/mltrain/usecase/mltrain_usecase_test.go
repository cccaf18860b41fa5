package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"trading_monitor/internal/feature/mltrain/domain/entity"
	"trading_monitor/internal/feature/mltrain/usecase"
	snapentity "trading_monitor/internal/feature/snapshots/domain/entity"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// ErrStore はモックと期待値の間で共有されるセンチネルエラーです。
var ErrStore = errors.New("store error")

// mockTrainingRepository はTrainingRepositoryインターフェースのモック実装です。
type mockTrainingRepository struct {
	InsertFunc  func(ctx context.Context, rec entity.TrainingRecord) error
	FindTopFunc func(ctx context.Context) (*entity.TrainingRecord, error)
}

func (m *mockTrainingRepository) Insert(ctx context.Context, rec entity.TrainingRecord) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, rec)
	}
	return errors.New("InsertFunc is not implemented")
}

func (m *mockTrainingRepository) FindTop(ctx context.Context) (*entity.TrainingRecord, error) {
	if m.FindTopFunc != nil {
		return m.FindTopFunc(ctx)
	}
	return nil, errors.New("FindTopFunc is not implemented")
}

// mockSnapshotReader はLatestSnapshotReaderインターフェースのモック実装です。
type mockSnapshotReader struct {
	FindLatestFunc func(ctx context.Context, symbol string) (*snapentity.TradeSnapshot, error)
}

func (m *mockSnapshotReader) FindLatest(ctx context.Context, symbol string) (*snapentity.TradeSnapshot, error) {
	return m.FindLatestFunc(ctx, symbol)
}

// TestRecordTraining はペイロードの型変換と保存を検証します。
func TestRecordTraining(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return fixedNow }

	var stored entity.TrainingRecord
	mockRepo := &mockTrainingRepository{
		InsertFunc: func(ctx context.Context, rec entity.TrainingRecord) error {
			stored = rec
			return nil
		},
	}
	u := usecase.NewMLTrainUsecase(mockRepo, &mockSnapshotReader{}, now)

	payload := map[string]any{
		"training_count": "42",
		"win_trades":     float64(30),
		"total_trades":   float64(50),
		"win_rate":       "0.6",
		"last_profit":    float64(12.5),
		"symbol":         " XAUUSD ",
		"timestamp":      float64(1700000000),
	}
	rec, err := u.RecordTraining(ctx, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := entity.TrainingRecord{
		TrainingCount: 42,
		WinTrades:     30,
		TotalTrades:   50,
		WinRate:       0.6,
		LastProfit:    12.5,
		Symbol:        "XAUUSD",
		Timestamp:     1700000000,
		CreatedAt:     fixedNow,
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("record = %+v, want %+v", rec, want)
	}
	if !reflect.DeepEqual(stored, want) {
		t.Errorf("stored = %+v, want %+v", stored, want)
	}

	// 不正フィールドはゼロ値に落ち、timestampは現在時刻になる
	rec, err = u.RecordTraining(ctx, map[string]any{"training_count": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.TrainingCount != 0 || rec.Timestamp != fixedNow.Unix() {
		t.Errorf("defaulted record = %+v", rec)
	}
}

// TestGridStats は最新スナップショットと学習統計の合成を検証します。
func TestGridStats(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return fixedNow }

	t.Run("success: both sources present", func(t *testing.T) {
		mockRepo := &mockTrainingRepository{
			FindTopFunc: func(ctx context.Context) (*entity.TrainingRecord, error) {
				return &entity.TrainingRecord{TrainingCount: 42, WinRate: 0.6}, nil
			},
		}
		mockSnaps := &mockSnapshotReader{
			FindLatestFunc: func(ctx context.Context, symbol string) (*snapentity.TradeSnapshot, error) {
				if symbol != "" {
					t.Errorf("symbol filter = %q, want any-symbol read", symbol)
				}
				return &snapentity.TradeSnapshot{
					Equity:     10500,
					Profit:     -35.2,
					OpenTrades: 4,
					Timestamp:  1700000000,
					GridInfo:   `[{"level":1,"price":1800.5,"lots":0.1,"direction":"buy","profit_pips":-5}]`,
				}, nil
			},
		}
		u := usecase.NewMLTrainUsecase(mockRepo, mockSnaps, now)

		stats, err := u.GridStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := entity.GridStats{
			CurrentEquity:   10500,
			FloatingPL:      -35.2,
			OpenGrids:       4,
			GridDetails:     []entity.GridLevel{{Level: 1, Price: 1800.5, Lots: 0.1, Direction: "buy", ProfitPips: -5}},
			MLTrainingCount: 42,
			MLWinRate:       0.6,
			LastUpdate:      1700000000,
		}
		if !reflect.DeepEqual(stats, want) {
			t.Errorf("stats = %+v, want %+v", stats, want)
		}
	})

	t.Run("empty store yields zero stats", func(t *testing.T) {
		mockRepo := &mockTrainingRepository{
			FindTopFunc: func(ctx context.Context) (*entity.TrainingRecord, error) { return nil, nil },
		}
		mockSnaps := &mockSnapshotReader{
			FindLatestFunc: func(ctx context.Context, symbol string) (*snapentity.TradeSnapshot, error) { return nil, nil },
		}
		u := usecase.NewMLTrainUsecase(mockRepo, mockSnaps, now)

		stats, err := u.GridStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := entity.GridStats{GridDetails: []entity.GridLevel{}}
		if !reflect.DeepEqual(stats, want) {
			t.Errorf("stats = %+v, want %+v", stats, want)
		}
	})

	t.Run("unparsable grid_info degrades to empty list", func(t *testing.T) {
		mockRepo := &mockTrainingRepository{
			FindTopFunc: func(ctx context.Context) (*entity.TrainingRecord, error) { return nil, nil },
		}
		mockSnaps := &mockSnapshotReader{
			FindLatestFunc: func(ctx context.Context, symbol string) (*snapentity.TradeSnapshot, error) {
				return &snapentity.TradeSnapshot{GridInfo: "{broken"}, nil
			},
		}
		u := usecase.NewMLTrainUsecase(mockRepo, mockSnaps, now)

		stats, err := u.GridStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stats.GridDetails) != 0 {
			t.Errorf("grid_details = %+v, want empty", stats.GridDetails)
		}
	})

	t.Run("snapshot store error is surfaced", func(t *testing.T) {
		mockSnaps := &mockSnapshotReader{
			FindLatestFunc: func(ctx context.Context, symbol string) (*snapentity.TradeSnapshot, error) {
				return nil, ErrStore
			},
		}
		u := usecase.NewMLTrainUsecase(&mockTrainingRepository{}, mockSnaps, now)

		if _, err := u.GridStats(ctx); !errors.Is(err, ErrStore) {
			t.Fatalf("error = %v, want %v", err, ErrStore)
		}
	})
}
