package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/cataloghub/cataloghub/internal/config"
	"github.com/cataloghub/cataloghub/internal/http/handlers"
	"github.com/cataloghub/cataloghub/internal/http/middlewares"
	"github.com/cataloghub/cataloghub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxRequestBody = 1 << 20 // 1 MiB is plenty for catalog payloads

type Deps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Client   *mongo.Client
	Prom     *observability.Prom
	PromReg  *prometheus.Registry
	Auth     handlers.Authenticator
	Catalog  handlers.ProductCatalog
	Verifier middlewares.TokenVerifier
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("cataloghub"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(middlewares.BodyLimit(maxRequestBody))
	r.Use(middlewares.RequireJSON())

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// the gate: attaches identity when a valid bearer token shows up,
	// never rejects on its own
	gate := middlewares.NewAuthMiddleware(d.Verifier, d.Log)
	r.Use(gate.Authenticate())

	// health
	ping := func() error {
		if d.Client == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return d.Client.Ping(ctx, readpref.Primary())
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.PromReg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.PromReg, promhttp.HandlerOpts{})))
	}

	// Routes

	authHandler := handlers.NewAuthHandler(d.Auth)
	productsHandler := handlers.NewProductsHandler(d.Catalog)

	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/products", productsHandler.ListProducts)
	api.GET("/products/:id", productsHandler.GetProductByID)
	api.POST("/products", productsHandler.CreateProduct)
	api.PUT("/products/:id", productsHandler.UpdateProduct)
	api.DELETE("/products/:id", productsHandler.DeleteProduct)

	return r
}
