package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/dangtrinh58/goshop/internal/adapter/handler"
	"github.com/dangtrinh58/goshop/internal/adapter/storage"
	"github.com/dangtrinh58/goshop/internal/adapter/token"
	"github.com/dangtrinh58/goshop/internal/config"
	"github.com/dangtrinh58/goshop/internal/core/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sqlx.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to open mysql: %v", err)
	}
	db.SetMaxOpenConns(cfg.MySQLMaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQLMaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	log.Println("connected to redis")

	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)
	tokens := token.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)

	svcs := handler.Services{
		Auth:       service.NewAuthService(mysqlAdapter, tokens),
		Users:      service.NewUserService(mysqlAdapter),
		Products:   service.NewProductService(mysqlAdapter),
		Categories: service.NewCategoryService(mysqlAdapter),
		Carts:      service.NewCartService(mysqlAdapter, mysqlAdapter),
		Orders:     service.NewOrderService(mysqlAdapter),
		Stats:      service.NewStatsService(mysqlAdapter, redisAdapter),
	}

	metrics := handler.NewMetrics()
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(svcs, tokens, metrics),
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	rdb.Close()
	db.Close()
	log.Println("connections closed")
}
