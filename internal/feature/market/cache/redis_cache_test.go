package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"trading_monitor/internal/feature/market/domain/entity"
)

var testCandles = []entity.Candle{
	{Time: 1700000000, Open: 1800.5, High: 1801.0, Low: 1799.9, Close: 1800.8, Volume: 500},
	{Time: 1700000060, Open: 1800.8, High: 1802.1, Low: 1800.2, Close: 1801.5, Volume: 340},
}

// TestRedisCandleCache_Hit はキャッシュヒット時に生成器を呼ばないことを検証します。
func TestRedisCandleCache_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	synth := &mockSynthesizer{}
	c := NewRedisCandleCache(rdb, 15*time.Second, synth, "market")

	b, _ := json.Marshal(testCandles)
	mock.ExpectGet("market:XAUUSD:1m:100").SetVal(string(b))

	out := c.GetOrCompute(context.Background(), "XAUUSD", "1m", 100)

	if synth.calls != 0 {
		t.Errorf("Generate was called %d times, expected 0", synth.calls)
	}
	if len(out) != len(testCandles) || out[0] != testCandles[0] {
		t.Errorf("cached candles mismatch: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestRedisCandleCache_MissStoresWithTTL はミス時に生成してTTL付きで
// 保存することを検証します。
func TestRedisCandleCache_MissStoresWithTTL(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	synth := &mockSynthesizer{
		generateFn: func(symbol, timeframe string, count int) []entity.Candle { return testCandles },
	}
	c := NewRedisCandleCache(rdb, 15*time.Second, synth, "market")

	b, _ := json.Marshal(testCandles)
	mock.ExpectGet("market:XAUUSD:1m:100").RedisNil()
	mock.ExpectSet("market:XAUUSD:1m:100", b, 15*time.Second).SetVal("OK")

	out := c.GetOrCompute(context.Background(), "XAUUSD", "1m", 100)

	if synth.calls != 1 {
		t.Errorf("Generate was called %d times, expected 1", synth.calls)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestRedisCandleCache_CorruptEntry は壊れたエントリを削除して
// 再生成することを検証します。
func TestRedisCandleCache_CorruptEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	synth := &mockSynthesizer{
		generateFn: func(symbol, timeframe string, count int) []entity.Candle { return testCandles },
	}
	c := NewRedisCandleCache(rdb, 15*time.Second, synth, "market")

	b, _ := json.Marshal(testCandles)
	mock.ExpectGet("market:XAUUSD:1m:100").SetVal("{not json")
	mock.ExpectDel("market:XAUUSD:1m:100").SetVal(1)
	mock.ExpectSet("market:XAUUSD:1m:100", b, 15*time.Second).SetVal("OK")

	out := c.GetOrCompute(context.Background(), "XAUUSD", "1m", 100)

	if synth.calls != 1 {
		t.Errorf("Generate was called %d times, expected 1", synth.calls)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestRedisCandleCache_NilClientBypasses はRedis未設定時に素通しで
// 生成することを検証します。
func TestRedisCandleCache_NilClientBypasses(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{
		generateFn: func(symbol, timeframe string, count int) []entity.Candle { return testCandles },
	}
	c := NewRedisCandleCache(nil, 0, synth, "")

	out := c.GetOrCompute(context.Background(), "XAUUSD", "1m", 100)

	if synth.calls != 1 {
		t.Errorf("Generate was called %d times, expected 1", synth.calls)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
}
