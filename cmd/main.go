package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpapi "garderob/internal/http"
	"garderob/internal/repository"
	"garderob/internal/service"

	_ "garderob/docs"
)

// @title Garderob API
// @version 1.0
// @description Clothing rental management: catalog, availability and orders
// @BasePath /api/v1
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	addr := ":" + envOr("PORT", "9091")
	uploadDir := envOr("UPLOAD_DIR", "uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Fatal("create upload dir", zap.Error(err))
	}

	store := repository.NewMemoryStore()
	categoriesRepo := repository.NewMemoryCategories(store)
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)

	availabilitySvc := service.NewAvailabilityService(store, ordersRepo)
	categoriesSvc := service.NewCategoryService(categoriesRepo, store)
	setsSvc := service.NewSetService(store)
	ordersSvc := service.NewOrderService(store, ordersRepo, availabilitySvc, tx)
	reportsSvc := service.NewReportService(store, ordersRepo)

	srv := httpapi.NewServer(categoriesSvc, setsSvc, ordersSvc, availabilitySvc, reportsSvc, uploadDir)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
