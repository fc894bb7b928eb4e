package middleware

import (
	"net/http"
	"time"

	"spendbook/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
)

// OriginMatcher reports whether an origin is allowed. Entries may be glob
// patterns such as https://*.vercel.app.
func OriginMatcher(allowed []string) func(origin string) bool {
	return func(origin string) bool {
		for _, pattern := range allowed {
			if glob.Glob(pattern, origin) {
				return true
			}
		}
		log.Debug().Str("origin", origin).Msg("origin not allowed by CORS")
		return false
	}
}

// CORS allows the configured frontends with credentials. Requests without an
// Origin header pass through, disallowed origins get 403.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowed := cfg.AllowedOrigins()
	log.Debug().Strs("origins", allowed).Msg("CORS allowed origins")

	return cors.New(cors.Config{
		AllowOriginFunc: OriginMatcher(allowed),
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
