// Package httpapi exposes a small operational HTTP surface next to the
// line-protocol listener: liveness and a store/session snapshot.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

// NewRouter builds the gin engine for the status listener.
func NewRouter(stores *recordstore.Stores, sessions ports.SessionRegistry, isProduction bool, logger *slog.Logger) *gin.Engine {
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/status", func(c *gin.Context) {
		counts := gin.H{}
		for name, counter := range map[string]interface{ Count() (int64, error) }{
			"users":        stores.Users,
			"accounts":     stores.Accounts,
			"loans":        stores.Loans,
			"transactions": stores.Transactions,
			"feedback":     stores.Feedback,
		} {
			n, err := counter.Count()
			if err != nil {
				logger.Error("store count failed",
					slog.String("store", name), slog.String("error", err.Error()))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
				return
			}
			counts[name] = n
		}
		c.JSON(http.StatusOK, gin.H{
			"active_sessions": sessions.Active(),
			"records":         counts,
		})
	})

	return r
}
