package server

import (
	"log"

	"sketchboard/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHome(c *gin.Context) {
	data := web.HomeData{}
	sketches, err := s.store.List(c.Request.Context())
	if err != nil {
		log.Printf("home gallery load failed error=%v", err)
		data.Error = msgListFailed
	} else {
		data.Sketches = web.GallerySketches(sketches)
	}
	templ.Handler(web.Home(data)).ServeHTTP(c.Writer, c.Request)
}
