package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/flightmate/api"
	"github.com/Domenick1991/flightmate/config"
	"github.com/Domenick1991/flightmate/internal/service/auth"
	"github.com/Domenick1991/flightmate/internal/service/booking"
	"github.com/Domenick1991/flightmate/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, authSvc auth.AuthUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	limiter := api.NewRateLimiter(cfg.Auth.RatePerMinute, cfg.Auth.RateBurst)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, limiter, authSvc, flightSvc, bookingSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func NewRouter(cfg *config.Config, limiter *api.RateLimiter, authSvc auth.AuthUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestMetrics())

	authGroup := router.Group("/api/auth")
	if limiter != nil {
		authGroup.Use(limiter.Middleware())
	}
	api.NewAuthHandler(authSvc).Register(authGroup)

	api.NewFlightHandler(flightSvc).Register(router.Group("/api/flights"))

	bookingsGroup := router.Group("/api/bookings", api.AuthRequired(authSvc))
	api.NewBookingHandler(bookingSvc).Register(bookingsGroup)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/flightmate.swagger.json"),
		)))
	}

	return router
}
