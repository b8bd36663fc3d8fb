package server

import (
	"strconv"
	"time"

	"sketchboard/internal/config"
)

const timestampIDLayout = "02012006150405"

// TimestampID encodes t as the digits DDMMYYYYhhmmss read as a decimal integer.
// Two calls within the same second return the same id.
func TimestampID(t time.Time) int64 {
	value, err := strconv.ParseInt(t.Format(timestampIDLayout), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// sketchID returns the id to insert with, or zero when the store assigns it.
func (s *Server) sketchID(now time.Time) int64 {
	if s.cfg.IDStrategy == config.IDTimestamp {
		return TimestampID(now)
	}
	return 0
}
