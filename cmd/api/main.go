package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotel_voice/internal/adapters/http_server"
	"hotel_voice/internal/adapters/memory"
	"hotel_voice/internal/adapters/observability"
	redisad "hotel_voice/internal/adapters/redis"
	"hotel_voice/internal/adapters/sheets"
	"hotel_voice/internal/app"
	"hotel_voice/internal/domain"
	"hotel_voice/internal/shared"
	"hotel_voice/internal/storage/csvstore"
	mysqlrepo "hotel_voice/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// static hotel data
	data, err := csvstore.New(cfg.DataDir).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("hotel data load failed")
	}

	// sessions: redis if reachable now, otherwise in-process for the process lifetime
	local, err := memory.New(cfg.SessionCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("local session store failed")
	}
	remote := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisTimeout, cfg.SessionTTL)
	tracker := app.NewSessionTracker(ctx, remote, local, cfg.RedisTimeout)
	log.Info().Str("mode", tracker.Mode().String()).Msg("session tracker ready")

	sink, closeSink := newCallLogSink(ctx, cfg)
	defer closeSink()

	// deps
	q := app.NewQueryService(
		app.NewRetriever(data, cfg.HotelName),
		tracker,
		app.NewCharEstimator(cfg.CharsPerToken),
		cfg.ChunkMaxTokens,
	)
	calls := app.NewCallLogService(sink)

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Calls: calls, HotelName: cfg.HotelName})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	_ = remote.Close()
}

// newCallLogSink picks the call log backend named by LOG_SINK.
func newCallLogSink(ctx context.Context, cfg shared.Config) (domain.CallLogSink, func()) {
	switch cfg.LogSink {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("call log sink: mysql")
		return mysqlrepo.New(db), func() { _ = db.Close() }
	default:
		cl, err := sheets.NewFromServiceAccount(ctx, cfg.GoogleServiceAcct, sheets.Options{
			SheetID: cfg.GoogleSheetID,
			Range:   cfg.SheetsRange,
			RPS:     cfg.SheetsRPS,
			Timeout: cfg.SheetsTimeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Google Sheets client")
		}
		log.Info().Str("range", cfg.SheetsRange).Msg("call log sink: google sheets")
		return cl, func() {}
	}
}
