// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storeit/appwrite"
	"storeit/config"
	"storeit/middleware"
	"storeit/storage"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// Document and blob ids must start alphanumeric, so the default nanoid
// alphabet (leading _ or -) can't be used
const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

type API struct {
	Cfg    *config.Config
	Admin  *appwrite.Client
	Store  storage.Store
	Router *gin.Engine

	cache *persist.MemoryStore
}

func NewRouter(cfg *config.Config) (*API, error) {
	a := &API{
		Cfg:   cfg,
		Admin: appwrite.NewAdmin(cfg.Appwrite),
		cache: persist.NewMemoryStore(time.Minute),
	}

	store, err := storage.New(cfg, a.Admin)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage, %w", err)
	}
	a.Store = store

	makeLogger(cfg.LogLevel)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
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

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 5 << 20

	gate := middleware.NewSessionGate(cfg)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register	-> Creates an account and sends the first OTP
		auth.POST("/register", a.AuthRegister)

		// POST /api/auth/otp		-> (Re)sends an email OTP
		auth.POST("/otp", a.AuthOTP)

		// POST /api/auth/sign-in	-> Starts sign-in for a known email
		auth.POST("/sign-in", a.AuthSignIn)

		// POST /api/auth/verify	-> Exchanges an OTP for a session cookie
		auth.POST("/verify", a.AuthVerify)

		// POST /api/auth/logout	-> Destroys the session, always redirects
		auth.POST("/logout", a.AuthLogout)
	}

	users := main.Group("/users")
	{
		// GET /api/users/me		-> Returns the current user or null
		users.GET("/me", a.cacheFor(30), a.UserMe)
	}

	files := main.Group("/files", gate)
	{
		// POST /api/files		-> Uploads a file (blob + document)
		files.POST("", middleware.BodySizeLimiter(cfg.UploadMaxSize), a.FileUpload)

		// GET /api/files		-> Filtered/sorted listing
		files.GET("", a.FileList)

		// PATCH /api/files/:id		-> Renames a file
		files.PATCH("/:id", a.FileRename)

		// PATCH /api/files/:id/users	-> Replaces the share list
		files.PATCH("/:id/users", a.FileShare)

		// DELETE /api/files/:id	-> Deletes document, then blob
		files.DELETE("/:id", a.FileDelete)
	}

	// GET /api/usage			-> Storage accounting for the current user
	main.GET("/usage", gate, a.cacheFor(30), a.Usage)

	return a, nil
}

func makeLogger(level string) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

// cacheFor caches GET responses per (URI, session) so cached payloads
// never cross users.
func (a *API) cacheFor(sec int) gin.HandlerFunc {
	return cache.Cache(a.cache, time.Second*time.Duration(sec),
		cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
			secret, _ := c.Cookie(a.Cfg.CookieName)
			return true, cache.Strategy{
				CacheKey: cacheKey(c.Request.RequestURI, secret),
			}
		}),
	)
}

// revalidate drops the caller's cached copy of path after a successful
// mutation. The usage summary changes with every file mutation, so its
// key is always dropped as well.
func (a *API) revalidate(c *gin.Context, path string) {
	secret, _ := c.Cookie(a.Cfg.CookieName)

	a.cache.Delete(cacheKey("/api/usage", secret))
	if path != "" {
		a.cache.Delete(cacheKey(path, secret))
	}
}

func cacheKey(path, secret string) string {
	return path + "|" + secret
}

func newID() string {
	id, err := gonanoid.Generate(idCharset, 20)
	if err != nil {
		// Only possible if the OS entropy source is broken
		panic(err)
	}

	return id
}
