package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	galleryWriteWait  = 10 * time.Second
	gallerySendBuffer = 16
)

type galleryMessage struct {
	Type     string           `json:"type"`
	Sketch   *sketchResponse  `json:"sketch,omitempty"`
	Sketches []sketchResponse `json:"sketches,omitempty"`
}

// galleryClient owns the only writer of its connection.
type galleryClient struct {
	conn *websocket.Conn
	send chan []byte
}

// galleryHub fans newly saved sketches out to every open gallery. Enqueueing
// never blocks; a viewer whose queue is full is dropped.
type galleryHub struct {
	mu         sync.Mutex
	clients    map[*websocket.Conn]*galleryClient
	writeWait  time.Duration
	sendBuffer int
}

func newGalleryHub() *galleryHub {
	return &galleryHub{
		clients:    make(map[*websocket.Conn]*galleryClient),
		writeWait:  galleryWriteWait,
		sendBuffer: gallerySendBuffer,
	}
}

func (h *galleryHub) Add(conn *websocket.Conn) {
	client := &galleryClient{
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}
	h.mu.Lock()
	h.clients[conn] = client
	h.mu.Unlock()
	go h.writeLoop(client)
}

func (h *galleryHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(conn)
}

func (h *galleryHub) removeLocked(conn *websocket.Conn) {
	client, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(client.send)
	_ = conn.Close()
}

func (h *galleryHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *galleryHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[conn]; ok {
		h.enqueueLocked(client, data)
	}
}

func (h *galleryHub) Broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		h.enqueueLocked(client, data)
	}
}

func (h *galleryHub) enqueueLocked(client *galleryClient, data []byte) {
	select {
	case client.send <- data:
	default:
		log.Printf("gallery ws dropped slow viewer remote=%s", client.conn.RemoteAddr())
		h.removeLocked(client.conn)
	}
}

func (h *galleryHub) writeLoop(client *galleryClient) {
	for data := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("gallery ws write failed error=%v", err)
			h.Remove(client.conn)
			return
		}
	}
}

var galleryUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleGalleryWebsocket(c *gin.Context) {
	conn, err := galleryUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected gallery remote=%s", c.Request.RemoteAddr)
	// Register before the snapshot so a sketch saved in between is not lost.
	s.gallery.Add(conn)
	sketches, err := s.store.List(c.Request.Context())
	if err != nil {
		log.Printf("ws gallery snapshot failed error=%v", err)
	} else {
		s.gallery.Send(conn, galleryMessage{
			Type:     "sketches",
			Sketches: toSketchResponses(sketches),
		})
	}
	go s.readGalleryWS(conn)
}

func (s *Server) readGalleryWS(conn *websocket.Conn) {
	defer s.gallery.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("gallery ws disconnected error=%v", err)
			return
		}
	}
}

func (s *Server) broadcastSketch(sketch sketchResponse) {
	if s.gallery == nil {
		return
	}
	s.gallery.Broadcast(galleryMessage{
		Type:   "sketch",
		Sketch: &sketch,
	})
}
