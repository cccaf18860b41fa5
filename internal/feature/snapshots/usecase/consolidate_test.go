package usecase_test

import (
	"math/rand"
	"testing"

	"trading_monitor/internal/feature/snapshots/domain/entity"
	"trading_monitor/internal/feature/snapshots/usecase"
)

// snap はテスト用スナップショットを簡潔に生成します。
func snap(symbol string, ts int64, openTrades int, profit float64) entity.TradeSnapshot {
	return entity.TradeSnapshot{Symbol: symbol, Timestamp: ts, OpenTrades: openTrades, Profit: profit}
}

// TestConsolidate_LatestPerSymbol は最大タイムスタンプのレコードが入力順序に
// 関係なく選ばれることを検証します。
func TestConsolidate_LatestPerSymbol(t *testing.T) {
	snaps := []entity.TradeSnapshot{
		snap("XAUUSD", 100, 1, 5),
		snap("XAUUSD", 300, 2, 7.5),
		snap("XAUUSD", 200, 9, -3),
		snap("EURUSD", 150, 4, 1.25),
	}

	// 入力順序をシャッフルしても結果は同一
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]entity.TradeSnapshot, len(snaps))
		copy(shuffled, snaps)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		res := usecase.Consolidate(shuffled, fixedNow)

		if got := res.Latest["XAUUSD"].Timestamp; got != 300 {
			t.Fatalf("XAUUSD latest timestamp = %d, want 300", got)
		}
		if got := res.Latest["EURUSD"].Timestamp; got != 150 {
			t.Fatalf("EURUSD latest timestamp = %d, want 150", got)
		}
	}
}

// TestConsolidate_Summary は保持セットに対する線形集約の結果を検証します。
func TestConsolidate_Summary(t *testing.T) {
	snaps := []entity.TradeSnapshot{
		snap("XAUUSD", 100, 1, 5),     // superseded, must not count
		snap("XAUUSD", 300, 2, 7.505), // retained
		snap("EURUSD", 150, 4, 1.25),  // retained
		snap("", 999, 100, 100),       // no symbol: skipped
	}

	res := usecase.Consolidate(snaps, fixedNow)

	if res.Status != usecase.StatusSuccess {
		t.Errorf("status = %q, want %q", res.Status, usecase.StatusSuccess)
	}
	if res.Summary.TotalSymbols != 2 {
		t.Errorf("total_symbols = %d, want 2", res.Summary.TotalSymbols)
	}
	if res.Summary.TotalOpenTrades != 6 {
		t.Errorf("total_open_trades = %d, want 6", res.Summary.TotalOpenTrades)
	}
	// 合計後に一度だけ2桁丸め: 7.505 + 1.25 = 8.755 → "8.76"
	if res.Summary.TotalProfit != "8.76" {
		t.Errorf("total_profit = %q, want %q", res.Summary.TotalProfit, "8.76")
	}
	if res.Summary.ServerTime != fixedNow.Unix() {
		t.Errorf("server_time = %d, want %d", res.Summary.ServerTime, fixedNow.Unix())
	}
}

// TestConsolidate_Empty は空入力が例外ではなく明示的な no_data になることを検証します。
func TestConsolidate_Empty(t *testing.T) {
	res := usecase.Consolidate(nil, fixedNow)

	if res.Status != usecase.StatusNoData {
		t.Errorf("status = %q, want %q", res.Status, usecase.StatusNoData)
	}
	if len(res.Latest) != 0 {
		t.Errorf("latest = %v, want empty", res.Latest)
	}
	if res.Summary.TotalSymbols != 0 || res.Summary.TotalOpenTrades != 0 {
		t.Errorf("summary totals = %+v, want zeros", res.Summary)
	}
	if res.Summary.TotalProfit != "0.00" {
		t.Errorf("total_profit = %q, want %q", res.Summary.TotalProfit, "0.00")
	}
}

// TestConsolidate_TimestampTie は同一タイムスタンプ時に先着レコードが保持される
// （読み取りごとに決定的である）ことを検証します。
func TestConsolidate_TimestampTie(t *testing.T) {
	first := snap("XAUUSD", 100, 1, 1)
	second := snap("XAUUSD", 100, 2, 2)

	res := usecase.Consolidate([]entity.TradeSnapshot{first, second}, fixedNow)
	if got := res.Latest["XAUUSD"].OpenTrades; got != 1 {
		t.Errorf("tie-break kept open_trades = %d, want 1 (first in input order)", got)
	}

	// 逆順なら逆のレコードが残る: 入力順序が同じなら結果も同じ
	res = usecase.Consolidate([]entity.TradeSnapshot{second, first}, fixedNow)
	if got := res.Latest["XAUUSD"].OpenTrades; got != 2 {
		t.Errorf("tie-break kept open_trades = %d, want 2 (first in input order)", got)
	}
}
