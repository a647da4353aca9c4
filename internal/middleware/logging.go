package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// RequestLogger logs one line per request once the handler chain has run.
func RequestLogger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		status := c.Writer.Status()
		keyvals := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", routeOf(c),
			"status", status,
			"took", time.Since(begin),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := GetUserID(c); ok {
			keyvals = append(keyvals, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			keyvals = append(keyvals, "err", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			level.Error(logger).Log(keyvals...)
		case status >= http.StatusBadRequest:
			level.Warn(logger).Log(keyvals...)
		default:
			level.Info(logger).Log(keyvals...)
		}
	}
}

// routeOf returns the matched route pattern so ids do not blow up label cardinality.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
