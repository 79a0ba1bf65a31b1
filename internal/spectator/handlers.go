package spectator

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tmiltonj/depose/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// handleWS upgrades a spectator connection and hands it to the hub.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("ws upgrade", "err", err)
		return
	}
	client := newClient(s.hub, conn)
	if !s.hub.join(client) {
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleState(c *gin.Context) {
	state, ok := s.hub.State()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no game in progress"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// handleQR renders the join link. ?size= overrides the pixel size.
func (s *Server) handleQR(c *gin.Context) {
	size := 0
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 64 || n > 1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 64 and 1024"})
			return
		}
		size = n
	}
	png, err := qrcode.Generate(s.JoinURL(c.Request), size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
