package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"sketchboard/internal/db"

	"github.com/gin-gonic/gin"
)

// storageFailure answers 500. The client sees message unless raw storage
// errors are enabled; the cause is always logged.
func (s *Server) storageFailure(c *gin.Context, message string, err error) {
	if errors.Is(err, db.ErrDuplicateID) {
		log.Printf("sketch id collision path=%s error=%v", c.Request.URL.Path, err)
	} else {
		log.Printf("storage failure path=%s error=%v", c.Request.URL.Path, err)
	}
	if s.cfg.ExposeStorageErrors {
		message = err.Error()
		var storageErr *db.StorageError
		if errors.As(err, &storageErr) {
			message = storageErr.Err.Error()
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("http request method=%s path=%s status=%d duration=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
