// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hwllojeena/bucket-list/internal/handlers"
	"github.com/hwllojeena/bucket-list/internal/services"
)

// Deps はルーター構築に必要な依存一式です。
type Deps struct {
	DB              *sql.DB
	ListService     *services.ListService
	PhotoService    *services.PhotoService
	TokenService    *services.TokenService
	DefaultPasscode string
}

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	// CORS対策
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	// ハンドラー
	listHandler := handlers.NewListHandler(deps.ListService, deps.PhotoService)
	unlockHandler := handlers.NewUnlockHandler(deps.ListService, deps.TokenService, deps.DefaultPasscode)

	// ルーティング
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/dbcheck", func(c *gin.Context) {
		if err := deps.DB.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})
	r.POST("/api/lists/:slug/unlock", unlockHandler.UnlockListHandler)

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(deps.TokenService))
	{
		authorized.GET("/api/lists/:slug", listHandler.GetListHandler)
		authorized.POST("/api/lists/:slug/tasks/:id/complete", listHandler.CompleteTaskHandler)
		authorized.POST("/api/lists/:slug/vouchers/:id/claim", listHandler.ClaimVoucherHandler)
	}

	return r
}
