package spectator

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one spectator connection. Spectators only listen; anything
// they send besides control frames is discarded.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	addr string
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, backlog),
		addr: conn.RemoteAddr().String(),
	}
}

// queue drops data when the client is already backlogged.
func (c *Client) queue(data []byte) {
	if data == nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) extendDeadline(string) error {
	return c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

// readPump only exists to answer pings and notice the peer going away.
func (c *Client) readPump() {
	defer c.conn.Close()
	defer c.hub.leave(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.extendDeadline("")
	c.conn.SetPongHandler(c.extendDeadline)

	for {
		_, _, err := c.conn.NextReader()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
			c.hub.log.Debug("spectator dropped", "addr", c.addr, "err", err)
		}
		return
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// writePump owns all writes to the connection. A closed send channel
// means the hub let go of this client.
func (c *Client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	defer c.conn.Close()

	for {
		var err error
		select {
		case frame, open := <-c.send:
			if !open {
				c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "table closed"))
				return
			}
			err = c.write(websocket.TextMessage, frame)
		case <-ping.C:
			err = c.write(websocket.PingMessage, nil)
		}
		if err != nil {
			c.hub.log.Debug("spectator write", "addr", c.addr, "err", err)
			return
		}
	}
}
