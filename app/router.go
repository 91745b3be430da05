// Package app wires the HTTP endpoints
package app

import (
	"time"

	"bitwise74/files-api/app/auth"
	"bitwise74/files-api/app/file"
	"bitwise74/files-api/app/root"
	"bitwise74/files-api/app/user"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type RouterConfig struct {
	Origins []string
	// RateLimit is the number of requests per second allowed per IP, 0
	// disables limiting
	RateLimit int
	// MaxUploadSize is the largest decoded upload in bytes
	MaxUploadSize int64
}

func NewRouter(d *internal.Deps, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	corsCfg := cors.Config{
		AllowOrigins:     cfg.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Token"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Origins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}

	router.Use(
		cors.New(corsCfg),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit,
		}),
	)

	router.HandleMethodNotAllowed = true

	token := middleware.NewTokenMiddleware(d.Sessions)
	optionalToken := middleware.NewOptionalTokenMiddleware(d.Sessions)
	// Uploads are base64 encoded inside JSON
	bodyLimit := middleware.BodySizeLimiter(cfg.MaxUploadSize/3*4 + 64<<10)
	store := persist.NewMemoryStore(time.Minute)

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	// GET /status			-> Reports if the stores are reachable
	router.GET("/status", func(c *gin.Context) { root.Status(c, d) })

	// GET /stats			-> Returns the number of users and files
	router.GET("/stats", cache.CacheByRequestURI(store, 30*time.Second), func(c *gin.Context) { root.Stats(c, d) })

	// GET /connect			-> Exchanges Basic credentials for a token
	router.GET("/connect", func(c *gin.Context) { auth.Connect(c, d) })

	// GET /disconnect		-> Destroys the current token
	router.GET("/disconnect", token, func(c *gin.Context) { auth.Disconnect(c, d) })

	u := router.Group("/users")
	{
		// POST /users			-> Registers a new user
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// GET /users/me		-> Returns the session user
		u.GET("/me", token, func(c *gin.Context) { user.UserFetch(c, d) })
	}

	f := router.Group("/files")
	{
		// POST /files			-> Creates a file, image or folder
		f.POST("", token, bodyLimit, func(c *gin.Context) { file.FileUpload(c, d) })

		// GET /files			-> Lists the user's files under ?parentId
		f.GET("", token, func(c *gin.Context) { file.FileFetchBulk(c, d) })

		// GET /files/:id		-> Returns a file owned by the user
		f.GET("/:id", token, func(c *gin.Context) { file.FileFetch(c, d) })

		// PUT /files/:id/publish	-> Makes a file public
		f.PUT("/:id/publish", token, func(c *gin.Context) { file.FilePublish(c, d) })

		// PUT /files/:id/unpublish	-> Makes a file private
		f.PUT("/:id/unpublish", token, func(c *gin.Context) { file.FileUnpublish(c, d) })

		// GET /files/:id/data		-> Returns the raw content of a readable file
		f.GET("/:id/data", optionalToken, func(c *gin.Context) { file.FileServe(c, d) })
	}

	return router
}
