// Package adapters implements the snapshots persistence boundary on MongoDB.
package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"trading_monitor/internal/feature/snapshots/domain/entity"
	"trading_monitor/internal/feature/snapshots/usecase"
)

type snapshotMongo struct {
	col *mongo.Collection
}

var _ usecase.SnapshotRepository = (*snapshotMongo)(nil)

// NewSnapshotRepository returns a SnapshotRepository backed by the "trades"
// collection of db.
func NewSnapshotRepository(db *mongo.Database) *snapshotMongo {
	return &snapshotMongo{col: db.Collection("trades")}
}

// snapshotDoc is the stored document shape for a TradeSnapshot.
type snapshotDoc struct {
	Symbol          string         `bson:"symbol"`
	Timestamp       int64          `bson:"timestamp"`
	Ticket          int64          `bson:"ticket,omitempty"`
	Equity          float64        `bson:"equity"`
	Balance         float64        `bson:"balance"`
	Profit          float64        `bson:"profit"`
	CurrentPrice    float64        `bson:"current_price"`
	BidPrice        float64        `bson:"bid_price"`
	AskPrice        float64        `bson:"ask_price"`
	Spread          float64        `bson:"spread"`
	OpenTrades      int            `bson:"open_trades"`
	MLConfidence    float64        `bson:"ml_confidence"`
	MLTrained       int            `bson:"ml_trained"`
	TotalProfitPips float64        `bson:"total_profit_pips"`
	TotalProfitUSD  float64        `bson:"total_profit_usd"`
	Trades          []positionDoc  `bson:"trades"`
	GridInfo        string         `bson:"grid_info,omitempty"`
	ServerReceived  int64          `bson:"server_received"`
	UpdatedAt       time.Time      `bson:"updated_at"`
}

type positionDoc struct {
	Ticket    int64   `bson:"ticket"`
	Type      string  `bson:"type"`
	Lots      float64 `bson:"lots"`
	OpenPrice float64 `bson:"open_price"`
	Profit    float64 `bson:"profit"`
}

func toDoc(e entity.TradeSnapshot) snapshotDoc {
	trades := make([]positionDoc, 0, len(e.Trades))
	for _, p := range e.Trades {
		trades = append(trades, positionDoc(p))
	}
	return snapshotDoc{
		Symbol:          e.Symbol,
		Timestamp:       e.Timestamp,
		Ticket:          e.Ticket,
		Equity:          e.Equity,
		Balance:         e.Balance,
		Profit:          e.Profit,
		CurrentPrice:    e.CurrentPrice,
		BidPrice:        e.BidPrice,
		AskPrice:        e.AskPrice,
		Spread:          e.Spread,
		OpenTrades:      e.OpenTrades,
		MLConfidence:    e.MLConfidence,
		MLTrained:       e.MLTrained,
		TotalProfitPips: e.TotalProfitPips,
		TotalProfitUSD:  e.TotalProfitUSD,
		Trades:          trades,
		GridInfo:        e.GridInfo,
		ServerReceived:  e.ServerReceived,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toEntity(d snapshotDoc) entity.TradeSnapshot {
	trades := make([]entity.OpenPosition, 0, len(d.Trades))
	for _, p := range d.Trades {
		trades = append(trades, entity.OpenPosition(p))
	}
	return entity.TradeSnapshot{
		Symbol:          d.Symbol,
		Timestamp:       d.Timestamp,
		Ticket:          d.Ticket,
		Equity:          d.Equity,
		Balance:         d.Balance,
		Profit:          d.Profit,
		CurrentPrice:    d.CurrentPrice,
		BidPrice:        d.BidPrice,
		AskPrice:        d.AskPrice,
		Spread:          d.Spread,
		OpenTrades:      d.OpenTrades,
		MLConfidence:    d.MLConfidence,
		MLTrained:       d.MLTrained,
		TotalProfitPips: d.TotalProfitPips,
		TotalProfitUSD:  d.TotalProfitUSD,
		Trades:          trades,
		GridInfo:        d.GridInfo,
		ServerReceived:  d.ServerReceived,
		UpdatedAt:       d.UpdatedAt,
	}
}

// keyFilter builds the upsert filter from the resolved key shape.
func keyFilter(key usecase.UpsertKey) bson.M {
	if key.ByTicket() {
		return bson.M{"symbol": key.Symbol, "ticket": key.Ticket}
	}
	return bson.M{"symbol": key.Symbol, "timestamp": key.Timestamp}
}

// Upsert replaces or inserts the full record identified by key. Each upsert is
// a single atomic read-modify-write on the server.
func (r *snapshotMongo) Upsert(ctx context.Context, key usecase.UpsertKey, snap entity.TradeSnapshot) (usecase.UpsertResult, error) {
	res, err := r.col.UpdateOne(ctx,
		keyFilter(key),
		bson.M{"$set": toDoc(snap)},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return usecase.UpsertResult{}, err
	}
	return usecase.UpsertResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
		Upserted: res.UpsertedCount,
	}, nil
}

// FindAll returns every stored snapshot ordered by timestamp descending.
func (r *snapshotMongo) FindAll(ctx context.Context) ([]entity.TradeSnapshot, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []snapshotDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.TradeSnapshot, 0, len(docs))
	for _, d := range docs {
		out = append(out, toEntity(d))
	}
	return out, nil
}

// FindLatest returns the newest snapshot for symbol, or across all symbols
// when symbol is empty. An empty collection yields (nil, nil).
func (r *snapshotMongo) FindLatest(ctx context.Context, symbol string) (*entity.TradeSnapshot, error) {
	filter := bson.M{}
	if symbol != "" {
		filter["symbol"] = symbol
	}
	var doc snapshotDoc
	err := r.col.FindOne(ctx, filter,
		options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e := toEntity(doc)
	return &e, nil
}

// FindRecent returns up to limit snapshots ordered by update time descending.
func (r *snapshotMongo) FindRecent(ctx context.Context, symbol string, limit int) ([]entity.TradeSnapshot, error) {
	filter := bson.M{}
	if symbol != "" {
		filter["symbol"] = symbol
	}
	cur, err := r.col.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "updated_at", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	var docs []snapshotDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.TradeSnapshot, 0, len(docs))
	for _, d := range docs {
		out = append(out, toEntity(d))
	}
	return out, nil
}
