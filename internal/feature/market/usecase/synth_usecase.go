// Package usecase implements the synthetic candle series generator.
//
// Prices are not sourced from any exchange. Each series is a biased random
// walk around a fixed per-symbol base price, shaped to look plausible on a
// chart: a smooth oscillating trend, a dampened off-hours regime and an
// occasional "news" shock on the last few bars.
package usecase

import (
	"math"
	"math/rand"
	"time"

	"trading_monitor/internal/feature/market/domain/entity"
)

// basePrices は既知シンボルの基準価格テーブルです。未知のシンボルは defaultBasePrice を使用します。
var basePrices = map[string]float64{
	"XAUUSD": 1800.50,
	"EURUSD": 1.0850,
	"GBPUSD": 1.2650,
	"USDJPY": 110.20,
	"BTCUSD": 35200.00,
	"ETHUSD": 1950.00,
	"US30":   35000.00,
	"NAS100": 16000.00,
	"SPX500": 5000.00,
	"TEST":   100.00,
}

// volatilities はシンボルごとのボラティリティ係数テーブルです。
var volatilities = map[string]float64{
	"XAUUSD": 0.002,
	"EURUSD": 0.0001,
	"GBPUSD": 0.0001,
	"USDJPY": 0.0001,
	"BTCUSD": 0.005,
	"ETHUSD": 0.008,
	"US30":   0.001,
	"NAS100": 0.0015,
	"SPX500": 0.001,
	"TEST":   0.0005,
}

const (
	defaultBasePrice  = 100.00
	defaultVolatility = 0.0002
)

// timeframeMinutes maps every accepted timeframe alias to its canonical
// bucket size in minutes. Unrecognized aliases fall back to 1 minute.
var timeframeMinutes = map[string]int{
	"1": 1, "5": 5, "15": 15,
	"60": 60, "240": 240, "D": 1440,
	"1m": 1, "5m": 5, "15m": 15,
	"1h": 60, "4h": 240, "1d": 1440,
}

// Market activity window: movement outside [activeHourFrom, activeHourTo] is
// dampened by offHoursFactor.
const (
	activeHourFrom = 1
	activeHourTo   = 23
	offHoursFactor = 0.3
)

// TimeframeMinutes resolves a timeframe alias to its bucket size in minutes.
func TimeframeMinutes(timeframe string) int {
	if m, ok := timeframeMinutes[timeframe]; ok {
		return m
	}
	return 1
}

// Symbols returns the known symbol names, for diagnostics.
func Symbols() []string {
	out := make([]string, 0, len(basePrices))
	for s := range basePrices {
		out = append(out, s)
	}
	return out
}

// Synthesizer generates synthetic OHLCV series. The random source and clock
// are injected so generation is reproducible in tests; production seeds from
// the wall clock.
type Synthesizer struct {
	rng *rand.Rand
	now func() time.Time
}

// NewSynthesizer creates a Synthesizer. A nil rng seeds a new source from the
// current time; a nil now uses time.Now.
func NewSynthesizer(rng *rand.Rand, now func() time.Time) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{rng: rng, now: now}
}

// Generate returns count bars for symbol at the given timeframe, oldest
// first. Bars are spaced exactly one bucket apart except the last, whose time
// is pinned to the invocation instant so the series always ends "now".
// count ≤ 0 yields an empty series; an unknown timeframe alias falls back to
// the 1-minute bucket. Generate never fails.
func (s *Synthesizer) Generate(symbol, timeframe string, count int) []entity.Candle {
	candles := []entity.Candle{}
	if count <= 0 {
		return candles
	}

	now := s.now()
	tfMinutes := TimeframeMinutes(timeframe)

	// Base price perturbed by a bounded minute-of-hour factor, so repeated
	// calls within the same minute walk from the same starting point.
	basePrice := basePrices[symbol]
	if basePrice == 0 {
		basePrice = defaultBasePrice
	}
	minuteSeed := now.Minute()
	basePrice = basePrice * (1 + float64(minuteSeed%10-5)*0.001)

	vol, ok := volatilities[symbol]
	if !ok {
		vol = defaultVolatility
	}

	marketVol := offHoursFactor
	if h := now.Hour(); h >= activeHourFrom && h <= activeHourTo {
		marketVol = 1.0
	}

	startTime := now.Unix() - int64(count*tfMinutes*60)
	currentPrice := basePrice

	for i := 0; i < count; i++ {
		randomWalk := (s.rng.Float64() - 0.5) * 2
		trend := math.Sin(float64(i)/20) * 0.1
		newsImpact := 0.0
		if i > count-5 {
			// Simulated news shock on the tail of the series
			newsImpact = s.rng.Float64()*0.5 - 0.25
		}

		change := (randomWalk*0.7 + trend*0.2 + newsImpact*0.1) * vol * marketVol

		open := round5(currentPrice)
		close := round5(currentPrice * (1 + change))
		high := round5(math.Max(open, close) * (1 + s.rng.Float64()*vol*0.5))
		low := round5(math.Min(open, close) * (1 - s.rng.Float64()*vol*0.5))

		candles = append(candles, entity.Candle{
			Time:   startTime + int64(i*tfMinutes*60),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: int64(s.rng.Float64()*1000) + 100,
		})

		currentPrice = close
	}

	// The last bar is re-stamped to "now" and gets a final perturbation to
	// its close, with high/low re-widened to keep the bar invariant.
	last := &candles[len(candles)-1]
	last.Time = now.Unix()
	lastMinuteChange := (s.rng.Float64() - 0.5) * 2 * vol * 0.1
	last.Close = round5(currentPrice * (1 + lastMinuteChange))
	last.High = math.Max(last.High, last.Close)
	last.Low = math.Min(last.Low, last.Close)

	return candles
}

// round5 rounds to the 5 decimal precision quoted on the chart.
func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
