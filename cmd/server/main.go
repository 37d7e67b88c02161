package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/moviweb/internal/config"
	"github.com/iliyamo/moviweb/internal/database"
	"github.com/iliyamo/moviweb/internal/handler"
	"github.com/iliyamo/moviweb/internal/omdb"
	"github.com/iliyamo/moviweb/internal/repository"
	"github.com/iliyamo/moviweb/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	lookup := omdb.NewClient(cfg.OMDBAPIKey, cfg.OMDBBaseURL)

	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewUserHandler(users),
		handler.NewMovieHandler(users, movies, lookup),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
