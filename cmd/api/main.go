package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	server "github.com/shahedul-alam/the-hotel-server/internal/adapters/http_server"
	"github.com/shahedul-alam/the-hotel-server/internal/adapters/observability"
	redisad "github.com/shahedul-alam/the-hotel-server/internal/adapters/redis"
	"github.com/shahedul-alam/the-hotel-server/internal/adapters/token"
	"github.com/shahedul-alam/the-hotel-server/internal/app"
	"github.com/shahedul-alam/the-hotel-server/internal/shared"
	mysqlrepo "github.com/shahedul-alam/the-hotel-server/internal/storage/mysql"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	defer db.Close()
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokens := token.New(cfg.JWTSecret, cfg.TokenTTL, cfg.AppEnv != "dev" && cfg.AppEnv != "development")

	var strategy app.ConsistencyStrategy
	switch cfg.ConsistencyMode {
	case "best-effort":
		strategy = app.NewBestEffort(repo)
	default:
		strategy = app.NewTransactional(repo)
	}
	log.Info().Str("strategy", strategy.Name()).Msg("booking consistency strategy")

	bookings := app.NewBookingService(strategy, repo, cache)
	rooms := app.NewQueryService(repo, cache, cfg.CacheTTL)
	reviews := app.NewReviewService(repo, cache)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Rooms:    rooms,
		Bookings: bookings,
		Reviews:  reviews,
		Tokens:   tokens,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("the hotel server listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
