package server

import (
	"log"
	"net/http"

	"sketchboard/internal/db"

	"github.com/gin-gonic/gin"
)

const (
	msgSketchRequired = "Name and drawing are required."
	msgListFailed     = "Failed to load sketches."
	msgSaveFailed     = "Failed to save sketch."
)

type createSketchRequest struct {
	Name    string `json:"name" binding:"required"`
	Drawing string `json:"drawing" binding:"required"`
}

type sketchResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Drawing string `json:"drawing"`
}

func toSketchResponse(sketch db.Sketch) sketchResponse {
	return sketchResponse{
		ID:      sketch.ID,
		Name:    sketch.Name,
		Drawing: sketch.Drawing,
	}
}

func toSketchResponses(sketches []db.Sketch) []sketchResponse {
	out := make([]sketchResponse, 0, len(sketches))
	for _, sketch := range sketches {
		out = append(out, toSketchResponse(sketch))
	}
	return out
}

func (s *Server) handleListSketches(c *gin.Context) {
	sketches, err := s.store.List(c.Request.Context())
	if err != nil {
		s.storageFailure(c, msgListFailed, err)
		return
	}
	c.JSON(http.StatusOK, toSketchResponses(sketches))
}

func (s *Server) handleCreateSketch(c *gin.Context) {
	var req createSketchRequest
	if !bindJSON(c, &req, msgSketchRequired) {
		return
	}
	now := s.now()
	sketch := db.Sketch{
		ID:      s.sketchID(now),
		Name:    req.Name,
		Drawing: req.Drawing,
		Created: now,
	}
	if err := s.store.Insert(c.Request.Context(), &sketch); err != nil {
		s.storageFailure(c, msgSaveFailed, err)
		return
	}
	log.Printf("sketch created id=%d strategy=%s drawing_bytes=%d", sketch.ID, s.cfg.IDStrategy, len(sketch.Drawing))
	resp := toSketchResponse(sketch)
	c.JSON(http.StatusCreated, resp)
	s.broadcastSketch(resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	if p, ok := s.store.(pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			log.Printf("health check failed error=%v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
