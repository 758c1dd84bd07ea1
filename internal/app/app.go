// Package app assembles the lending API from its repositories, services and
// handlers.
package app

import (
	"net/http"

	"equiplend/internal/middleware"
	"equiplend/internal/modules/access"
	"equiplend/internal/modules/auth"
	"equiplend/internal/modules/checkout"
	"equiplend/internal/modules/equipment"
	"equiplend/internal/modules/feed"
	"equiplend/internal/modules/reservation"
	"equiplend/internal/pkg/diagnostics"
	"equiplend/internal/pkg/jwt"
	"equiplend/internal/pkg/metrics"
	"equiplend/internal/pkg/response"
	"equiplend/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options configures New. Metrics may be nil to disable /metrics.
type Options struct {
	DB          *gorm.DB
	JWT         *jwt.Service
	Diagnostics diagnostics.Sink
	Metrics     *metrics.Collector
	CORSOrigins string
}

type App struct {
	Router *gin.Engine
	Hub    *feed.Hub
}

func New(opts Options) *App {
	diag := opts.Diagnostics
	if diag == nil {
		diag = diagnostics.NewLogSink(nil)
	}

	actorRepo := repository.NewActorRepository(opts.DB)
	equipmentRepo := repository.NewEquipmentRepository(opts.DB)
	reservationRepo := repository.NewReservationRepository(opts.DB)
	checkoutRepo := repository.NewCheckoutRepository(opts.DB)

	gate := access.NewGate(actorRepo)
	hub := feed.NewHub()

	authService := auth.NewService(actorRepo, opts.JWT)
	equipmentService := equipment.NewService(equipmentRepo, gate, hub)
	reservationService := reservation.NewService(reservationRepo, equipmentRepo, gate, hub)
	checkoutService := checkout.NewService(checkoutRepo, gate, hub)

	authHandler := auth.NewHandler(authService, diag)
	equipmentHandler := equipment.NewHandler(equipmentService, diag)
	reservationHandler := reservation.NewHandler(reservationService, diag)
	checkoutHandler := checkout.NewHandler(checkoutService, diag)
	feedHandler := feed.NewHandler(hub, opts.JWT, gate, diag, nil)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.GET("/healthz", health(opts.DB))
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	public := v1.Group("")
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(opts.JWT))
	staffOnly := middleware.RequireRole(gate, diag, access.Staff...)

	authHandler.RegisterPublicRoutes(public)
	authHandler.RegisterProtectedRoutes(protected)
	equipmentHandler.RegisterRoutes(public, protected)
	reservationHandler.RegisterRoutes(protected)
	checkoutHandler.RegisterRoutes(protected, staffOnly)
	feedHandler.RegisterRoutes(public)

	return &App{Router: r, Hub: hub}
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
