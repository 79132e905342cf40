// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProcessTimeHeader carries the handler time in seconds.
const ProcessTimeHeader = "X-Process-Time"

// processTimeWriter stamps ProcessTimeHeader when the status is set, before
// any body byte goes out.
type processTimeWriter struct {
	gin.ResponseWriter
	start time.Time
}

func (w *processTimeWriter) WriteHeader(code int) {
	w.Header().Set(ProcessTimeHeader, strconv.FormatFloat(time.Since(w.start).Seconds(), 'f', 6, 64))
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request and sets X-Process-Time.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Writer = &processTimeWriter{ResponseWriter: c.Writer, start: start}

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
			"bytes":     c.Writer.Size(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= 500:
			entry.Error("server error")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
