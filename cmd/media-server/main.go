package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"socialwall/internal/common"
	"socialwall/internal/config"
	"socialwall/internal/dbmongo"
	"socialwall/internal/media"
)

func main() {
	log.Println("Starting Media Server...")

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := config.Load()

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Close(context.Background())

	server := media.NewHTTPServer(mongoClient, cfg)
	router := server.Router()
	router.Use(common.LoggingMiddleware)
	router.Use(common.IdentityMiddleware)

	addr := ":" + cfg.Server.MediaPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Media Server running on port %s", cfg.Server.MediaPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Media Server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Media Server stopped")
}
