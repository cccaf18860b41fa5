package handler

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// defaultWSServerURL は WS_SERVER_URL 未設定時のリレーサーバーです。
const defaultWSServerURL = "wss://bb-scalper-ws.onrender.com"

// WSInfo はリアルタイム価格配信用のWebSocketリレー情報を返します。
// リレー自体は別プロセスであり、ここでは接続先の案内のみを提供します。
func WSInfo(c *gin.Context) {
	wsServerURL := os.Getenv("WS_SERVER_URL")
	if wsServerURL == "" {
		wsServerURL = defaultWSServerURL
	}

	c.JSON(http.StatusOK, gin.H{
		"service":          "WebSocket Proxy Information",
		"status":           "active",
		"websocket_server": wsServerURL,
		"protocol":         "Socket.IO",
		"supported_events": []string{
			"connect",
			"price_update",
			"subscribe",
			"unsubscribe",
			"timeframe_change",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
