package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "careplus/docs"
	"careplus/internal/auth"
	"careplus/internal/config"
	"careplus/internal/handlers"
	"careplus/internal/logger"
	"careplus/internal/queue"
	"careplus/internal/storage"
	"careplus/internal/tasks"
	"careplus/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @Title						Онлайн очередь к врачу
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка конфигурации: ", err)
	}

	zlog, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "careplus")
	if err != nil {
		log.Fatal("Ошибка инициализации логгера: ", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.ConnectDatabase(cfg.Database, zlog)
	if err != nil {
		return err
	}
	defer storage.CloseDatabase(db)

	if err := storage.Migrate(db); err != nil {
		return err
	}

	rdb, err := storage.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	loc, err := cfg.Queue.Location()
	if err != nil {
		return err
	}

	clinics := storage.NewCachedClinics(storage.NewGormClinics(db), rdb, cfg.Queue.ClinicCacheTTL, zlog)
	store := storage.NewGormStore(db)
	svc := queue.NewService(store, clinics, zlog,
		queue.WithLocation(loc),
		queue.WithServiceMinutes(cfg.Queue.ServiceMinutes),
		queue.WithPositionPolicy(queue.PositionPolicy(cfg.Queue.PositionPolicy)),
	)

	hub := ws.NewHub(zlog)
	go hub.Run(ctx)

	// Дни, оставшиеся открытыми после простоя, закрываем сразу
	closer := tasks.NewDayCloseJob(store, hub, loc, zlog)
	closer.Run()
	scheduler, err := tasks.InitScheduler(cfg.Queue.CloseCron, closer, zlog)
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(zlog))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !containsWildcard(cfg.CORSOrigins),
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := handlers.NewQueueHandler(svc, clinics, hub, zlog)
	handlers.RegisterRoutes(r, h, auth.NewVerifier(cfg.AccessSecret), hub.QueueWebSocketHandler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Браузеры не принимают "*" в ответе на запрос с credentials.
func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
