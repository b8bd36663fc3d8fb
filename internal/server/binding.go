package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes and validates the body into req. Any failure answers 400
// with message; the reason is only logged.
func bindJSON(c *gin.Context, req any, message string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Printf("request rejected path=%s reason=%s", c.Request.URL.Path, describeBindError(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return false
	}
	return true
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "malformed body"
	}
	parts := make([]string, 0, len(verrs))
	for _, verr := range verrs {
		parts = append(parts, verr.Field()+":"+verr.Tag())
	}
	return strings.Join(parts, ",")
}
