package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ezoic/caloriedash/nav"
	"github.com/ezoic/caloriedash/pkg/log"
)

const controllerKey = "nav.controller"

// accessLog logs every request through the process logger.
func accessLog(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			log.PathKey, c.Request.URL.Path,
			"status", c.Writer.Status(),
			log.DurationMsKey, float64(time.Since(start).Microseconds()) / 1000,
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.Last().Err)
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request failed", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Debug("Request served", fields...)
		}
	}
}

// withSession resolves the session cookie to a page controller, issuing a
// new cookie when the client has none or an expired one.
func withSession(store *SessionStore, secure bool, logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(SessionCookie)
		id, ctrl := store.Get(cookie)
		if id.String() != cookie {
			logger.Debug("Session started", log.SessionKey, id.String())
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id.String(), 0, "/", "", secure, true)
		}
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

func controller(c *gin.Context) *nav.Controller {
	return c.MustGet(controllerKey).(*nav.Controller)
}
