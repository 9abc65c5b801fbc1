package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/AdamBeresnev/afcon-predictor/internal/config"
	"github.com/AdamBeresnev/afcon-predictor/internal/db"
	"github.com/AdamBeresnev/afcon-predictor/internal/middleware"
	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
	"github.com/AdamBeresnev/afcon-predictor/internal/service"
	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	database := db.InitDB(cfg.DatabasePath)
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if cfg.FixturesPath != "" {
		if err := importFixtures(cfg.FixturesPath); err != nil {
			log.Fatal("Failed to import fixtures:", err)
		}
	}

	userService := service.NewUserService(database, store.NewUserStore(database), cfg.AdminUsernames)
	if err := userService.PromoteAdmins(context.Background()); err != nil {
		log.Fatal(err)
	}

	lock, err := prediction.NewLockPolicy(cfg.LockPolicy, cfg.LockDeadline)
	if err != nil {
		log.Fatal(err)
	}

	middleware.InitAuth(cfg)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLife
	sessionManager.Store = sqlite3store.New(database.DB)

	router := newRouter(cfg, sessionManager, lock, clockwork.NewRealClock())

	log.Printf("Server starting on http://localhost:%s (lock policy: %s)", cfg.Port, cfg.LockPolicy)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}

func importFixtures(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dbConn := db.GetDB()
	n, err := service.NewFixtureService(dbConn, store.NewTournamentStore(dbConn)).ImportFixtures(context.Background(), f)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("Imported %d matches from %s", n, path)
	}
	return nil
}
