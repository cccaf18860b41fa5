package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"trading_monitor/internal/app/router"
	marketcache "trading_monitor/internal/feature/market/cache"
	markethandler "trading_monitor/internal/feature/market/transport/handler"
	marketusecase "trading_monitor/internal/feature/market/usecase"
	mltrainadapters "trading_monitor/internal/feature/mltrain/adapters"
	mltrainhandler "trading_monitor/internal/feature/mltrain/transport/handler"
	mltrainusecase "trading_monitor/internal/feature/mltrain/usecase"
	snapshotadapters "trading_monitor/internal/feature/snapshots/adapters"
	snapshothandler "trading_monitor/internal/feature/snapshots/transport/handler"
	snapshotusecase "trading_monitor/internal/feature/snapshots/usecase"
	inframongo "trading_monitor/internal/infrastructure/mongo"
	infraredis "trading_monitor/internal/infrastructure/redis"
	"trading_monitor/internal/shared/ratelimiter"
)

func main() {
	// Mongo（スナップショットの唯一の永続ストア）
	client, err := inframongo.NewMongoClient()
	if err != nil {
		log.Fatalf("MongoDB connect failed: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Println("[ERROR] Failed to disconnect MongoDB client:", err)
		}
	}()
	db := client.Database(inframongo.DatabaseName)

	// Redis（任意: 合成チャートの共有キャッシュ）
	var rdb *redisv9.Client
	if os.Getenv("REDIS_HOST") == "" {
		rdb = nil
	} else if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running with in-process cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	snapshotRepo := snapshotadapters.NewSnapshotRepository(db)
	trainingRepo := mltrainadapters.NewTrainingRepository(db)

	// 合成チャート生成器とキャッシュ
	synth := marketusecase.NewSynthesizer(
		rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
	var candleCache markethandler.MarketUsecase
	if rdb != nil {
		candleCache = marketcache.NewRedisCandleCache(rdb, marketcache.DefaultTTL, synth, "market")
	} else {
		candleCache = marketcache.NewMemoryCache(synth, marketcache.DefaultTTL, time.Now)
	}

	// Usecase
	ingestUC := snapshotusecase.NewIngestUsecase(snapshotRepo, time.Now)
	overviewUC := snapshotusecase.NewOverviewUsecase(snapshotRepo, time.Now)
	mltrainUC := mltrainusecase.NewMLTrainUsecase(trainingRepo, snapshotRepo, time.Now)

	// Handler
	snapshotH := snapshothandler.NewSnapshotHandler(ingestUC, overviewUC)
	marketH := markethandler.NewMarketHandler(candleCache)
	mltrainH := mltrainhandler.NewMLTrainHandler(mltrainUC)

	// 取り込みは毎秒数件に抑える（EAのリトライ暴走対策）
	ingestLimiter := ratelimiter.NewRateLimiter(120, time.Minute)

	// ルータ生成
	router := router.NewRouter(snapshotH, marketH, mltrainH, ingestLimiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
