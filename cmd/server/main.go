package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-timebill/auth"
	"github.com/diewo77/go-timebill/internal/config"
	"github.com/diewo77/go-timebill/internal/db"
	"github.com/diewo77/go-timebill/internal/handlers"
	"github.com/diewo77/go-timebill/internal/models"
	"github.com/joho/godotenv"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrateOnlyFlag {
		if err := migrate(cfg); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed successfully")
		return
	}

	if cfg.App.Migrations {
		if err := migrate(cfg); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed")
	} else if err := db.Migrate(dbConn); err != nil {
		log.Fatalf("Auto-migration failed: %v", err)
	}

	// Sessions are only valid while their user row exists.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		dbConn.Model(&models.User{}).Where("id = ?", uid).Count(&count)
		return count > 0
	})

	// Basic-auth fallback reuses the login credential check.
	authHandler := handlers.NewAuthHandler(dbConn)
	auth.SetCredentialChecker(func(ctx context.Context, email, password string) (uint, bool) {
		return authHandler.CheckCredentials(email, password)
	})

	appHandler := NewApp(dbConn)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (driver=%s dev=%v)", cfg.Server.Port, cfg.Database.Driver, cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// migrate applies the versioned SQL migrations (Postgres only); sqlite installs
// fall back to the auto-migration path handled by db.Migrate.
func migrate(cfg *config.Config) error {
	if cfg.Database.Driver != "postgres" {
		dbConn, err := db.Connect(cfg.Database)
		if err != nil {
			return err
		}
		return db.Migrate(dbConn)
	}
	return db.RunSQLMigrations(cfg.Database.URL())
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
