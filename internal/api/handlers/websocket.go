package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Alishba998/glowchat.github/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域由部署層把關，這裡放行所有來源
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS 把連線升級成 WebSocket 後交給 Hub，身份驗證走連線內的 join 事件
func ServeWS(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		realtime.ServeClient(hub, conn)
	}
}
