package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"socialwall/internal/common"
	"socialwall/internal/di"
)

func main() {
	log.Println("Starting Wall Service...")

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	app, cleanup, err := di.InitializeWallApplication()
	if err != nil {
		log.Fatalf("Failed to initialize wall service: %v", err)
	}
	defer cleanup()

	router := mux.NewRouter()
	router.Use(common.LoggingMiddleware)
	router.Use(common.IdentityMiddleware)
	app.WallHandler.Register(router)
	app.UserHandler.Register(router)

	addr := ":" + app.Config.Server.WallPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Wall Service running on port %s", app.Config.Server.WallPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Wall Service...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Wall Service stopped")
}
