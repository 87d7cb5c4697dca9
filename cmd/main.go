package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Vovarama1992/backstage/internal/config"
	"github.com/Vovarama1992/backstage/internal/delivery"
	ws "github.com/Vovarama1992/backstage/internal/delivery/ws"
	"github.com/Vovarama1992/backstage/internal/domain"
	"github.com/Vovarama1992/backstage/internal/infra"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {

	// ENV
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is not set")
	}
	if cfg.AuthSecret == "" {
		panic("AUTH_SECRET is not set")
	}

	// LOGGER
	var sink zapcore.WriteSyncer = zapcore.AddSync(os.Stdout)
	if cfg.LogFilePath != "" {
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
		}))
	}
	zcore := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink,
		zapcore.InfoLevel,
	))
	zl := logger.NewZapLogger(zcore.Sugar())

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		panic("postgres ping failed: " + err.Error())
	}

	if err := infra.Migrate(ctx, pool); err != nil {
		panic("migrate failed: " + err.Error())
	}

	// BLOB STORE
	blobs, err := infra.NewDiskBlobStore(cfg.UploadDir)
	if err != nil {
		panic("cannot open upload dir: " + err.Error())
	}
	prober := infra.NewFfprobeProber(cfg.UploadDir)

	// REPOS
	adminRepo := infra.NewPostgresAdminRepo(pool)
	bookRepo := infra.NewPostgresBookRepo(pool)
	cdRepo := infra.NewPostgresCdRepo(pool)
	dvdRepo := infra.NewPostgresDvdRepo(pool)
	clipRepo := infra.NewPostgresClipRepo(pool)
	lyricRepo := infra.NewPostgresLyricRepo(pool)
	photoRepo := infra.NewPostgresPhotoRepo(pool)
	showRepo := infra.NewPostgresShowRepo(pool)
	textRepo := infra.NewPostgresTextRepo(pool)
	messageRepo := infra.NewPostgresMessageRepo(pool)
	uploadRepo := infra.NewPostgresUploadRepo(pool)
	statsRepo := infra.NewPostgresStatsRepo(pool)

	// SERVICES
	authService := domain.NewAuthService(adminRepo, cfg.AuthSecret)
	events := domain.NewEventBus()
	uploadService := domain.NewUploadService(uploadRepo, blobs, prober, cfg.MaxUploadMB)
	cdService := domain.NewCdService(cdRepo, uploadService, events)
	dvdService := domain.NewDvdService(dvdRepo, uploadService, events)

	if err := authService.Seed(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		panic("seed admin failed: " + err.Error())
	}

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range events.Events() {
			payload, err := json.Marshal(ev)
			if err != nil {
				log.Printf("[SEND][ERR] json marshal failed: %v", err)
				continue
			}

			hub.SendToRoom(ev.Kind, payload)
			hub.SendToRoom("feed", payload)
		}
	}()

	// HANDLERS
	handlers := delivery.Handlers{
		Auth:     delivery.NewAuthHandler(authService, adminRepo, zl),
		Books:    delivery.NewBookHandler(bookRepo, uploadService, events, zl),
		Cds:      delivery.NewCdHandler(cdRepo, cdService, zl),
		Dvds:     delivery.NewDvdHandler(dvdRepo, dvdService, zl),
		Clips:    delivery.NewClipHandler(clipRepo, uploadService, events, zl),
		Lyrics:   delivery.NewLyricHandler(lyricRepo, events, zl),
		Photos:   delivery.NewPhotoHandler(photoRepo, uploadService, events, zl),
		Shows:    delivery.NewShowHandler(showRepo, events, zl),
		Texts:    delivery.NewTextHandler(textRepo, events, zl),
		Messages: delivery.NewMessageHandler(messageRepo, events, zl),
		Uploads:  delivery.NewUploadHandler(uploadRepo, uploadService, events, zl),
		Admins:   delivery.NewAdminHandler(adminRepo, zl),
		Stats:    delivery.NewStatsHandler(statsRepo, zl),
	}

	// ROUTER
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, authService, handlers)

	// WS route
	r.Get("/ws", ws.FeedHandler(hub, authService))

	// uploaded assets
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(blobs.HTTPFs())))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
