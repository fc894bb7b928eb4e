package middleware

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MsgInternalError is the only detail clients get about unexpected failures.
const MsgInternalError = "Internal server error"

// Errors turns errors attached with c.Error into a uniform 500 response.
// Handlers that already wrote a response keep it.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := requestid.Get(c)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request-id", requestID).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"message": MsgInternalError})
		}
	}
}

// NotFound answers unknown routes the way the API answers everything else.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not Found - " + c.Request.URL.Path})
}
