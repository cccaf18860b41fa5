package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	markethandler "trading_monitor/internal/feature/market/transport/handler"
	mltrainhandler "trading_monitor/internal/feature/mltrain/transport/handler"
	snapshothandler "trading_monitor/internal/feature/snapshots/transport/handler"
	"trading_monitor/internal/interface/handler"
	"trading_monitor/internal/shared/ratelimiter"
)

func NewRouter(snapshots *snapshothandler.SnapshotHandler, market *markethandler.MarketHandler,
	mltrain *mltrainhandler.MLTrainHandler, ingestLimiter ratelimiter.RateLimiterInterface) *gin.Engine {
	r := gin.Default()

	// ダッシュボードはブラウザから直接叩くため全オリジンを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	{
		// 取引クライアントからのスナップショット報告
		api.POST("/update_trade", ratelimiter.Middleware(ingestLimiter), snapshots.UpdateTrade)
		// ダッシュボード読み取り
		api.GET("/get_all_symbols", snapshots.GetAllSymbols)
		api.GET("/get_trades", snapshots.GetTrades)
		// チャートデータ（合成）
		api.GET("/market_data", market.GetMarketData)
		// ML学習統計
		api.POST("/ml_train", mltrain.RecordTraining)
		api.GET("/grid_stats", mltrain.GridStats)
		// WebSocketリレー情報
		api.GET("/ws_info", handler.WSInfo)
	}

	return r
}
