package controllers

import (
	"net/http"
	"time"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// wsPingInterval must stay below common LB idle timeouts (60s default on ALB).
const wsPingInterval = 25 * time.Second

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	// origin policy is enforced at the edge; the token already gates this route
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AlertsWS subscribes the caller to its alert stream. The connection only
// ever receives; inbound frames are drained to detect the close.
func (rc *RealtimeController) AlertsWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)
	defer rc.RT.Unregister(cl)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(wsPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
