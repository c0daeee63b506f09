// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/SoftbearStudios/meadow/meadow"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	socketBufferSize = 16

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Placements per outbound message.
	batchSize = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  4096,
}

type (
	// inbound asks for a layout. A missing seed uses the hub's base seed.
	inbound struct {
		Seed *int64 `json:"seed"`
	}

	outbound struct {
		Type string      `json:"type"`
		Data interface{} `json:"data"`
	}
)

// socketClient streams layouts to one instantiation client.
type socketClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan outbound
	done chan struct{} // closed when writePump exits
	once sync.Once
}

func (h *Hub) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}

	client := &socketClient{
		hub:  h,
		conn: conn,
		send: make(chan outbound, socketBufferSize),
		done: make(chan struct{}),
	}
	go client.writePump()
	go client.readPump()
}

func (client *socketClient) destroy() {
	client.once.Do(func() {
		_ = client.conn.Close()
	})
}

// readPump handles one request at a time and is the only sender on client.send.
func (client *socketClient) readPump() {
	defer func() {
		close(client.send)
		client.destroy()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, buf, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("socket read error", err)
			}
			return
		}

		var in inbound
		if err = meadow.JSON.Unmarshal(buf, &in); err != nil {
			if !client.enqueue(outbound{Type: "error", Data: "invalid request"}) {
				return
			}
			continue
		}

		seed := client.hub.base.Seed
		if in.Seed != nil {
			seed = *in.Seed
		}
		if !client.stream(seed) {
			return
		}
	}
}

// stream sends one layout in batches followed by its summary.
// Returns false if the client went away.
func (client *socketClient) stream(seed int64) bool {
	layout, _, err := client.hub.Build(seed)
	if err != nil {
		log.Println("layout error", err)
		return client.enqueue(outbound{Type: "error", Data: "build failed"})
	}

	placements := layout.Placements
	for len(placements) > 0 {
		n := len(placements)
		if n > batchSize {
			n = batchSize
		}
		if !client.enqueue(outbound{Type: "placements", Data: placements[:n]}) {
			return false
		}
		placements = placements[n:]
	}
	return client.enqueue(outbound{Type: "done", Data: layout.Summary()})
}

// enqueue blocks until the message is queued. Layout messages are never dropped.
func (client *socketClient) enqueue(message outbound) bool {
	select {
	case client.send <- message:
		return true
	case <-client.done:
		return false
	}
}

func (client *socketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(client.done)
		client.destroy()
	}()

	for {
		select {
		case message, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			buf, err := meadow.JSON.Marshal(message)
			if err != nil {
				log.Println("encode error", err)
				return
			}
			if err = client.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
