package server

import (
	"net/http"
	"time"

	"sketchboard/internal/config"
	"sketchboard/internal/db"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	store   SketchStore
	gallery *galleryHub
	cfg     config.Config
	now     func() time.Time
}

// New builds a server over conn. A nil conn keeps sketches in memory.
func New(conn *gorm.DB, cfg config.Config) *Server {
	if conn == nil {
		return NewWithStore(newMemoryStore(cfg.IDStrategy), cfg)
	}
	return NewWithStore(db.NewSketchStore(conn, cfg.IDStrategy), cfg)
}

func NewWithStore(store SketchStore, cfg config.Config) *Server {
	return &Server{
		store:   store,
		gallery: newGalleryHub(),
		cfg:     cfg,
		now:     timeNowUTC,
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.GET("/", s.handleHome)
	router.GET("/healthz", s.handleHealth)
	router.GET("/ws/sketches", s.handleGalleryWebsocket)
	for _, path := range []string{"/sketches", "/api/sketches"} {
		router.GET(path, s.handleListSketches)
		router.POST(path, s.handleCreateSketch)
	}
	return router
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
