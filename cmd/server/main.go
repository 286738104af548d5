package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"tuneboard/auth"
	"tuneboard/config"
	"tuneboard/db"
	"tuneboard/db/mongo"
	"tuneboard/db/postgres"
	"tuneboard/handlers"
	"tuneboard/i18n"
	"tuneboard/musicapi"
	"tuneboard/repository"
	"tuneboard/routes"
)

func main() {
	// Load config from .env or system environment
	cfg := config.LoadConfig()

	var userRepo repository.UserRepository
	var postRepo repository.PostRepository
	var sessionRepo repository.SessionRepository

	switch cfg.DBType {
	case "postgres":
		// Schema lives in db/migrations; Mongo needs no migrations.
		db.RunMigrations(cfg.PostgresURL)

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		postRepo = repository.NewPostgresPostRepo(pg.Conn)
		sessionRepo = repository.NewPostgresSessionRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		userRepo = repository.NewMongoUserRepo(mg.Client)
		postRepo = repository.NewMongoPostRepo(mg.Client)
		sessionRepo = repository.NewMongoSessionRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalf("could not create upload directory %s: %v", cfg.UploadDir, err)
	}

	bundle, err := i18n.Load(cfg.LocalesDir, []string{"en", "ru"}, "en")
	if err != nil {
		log.Fatalf("could not load locales: %v", err)
	}

	renderer, err := handlers.NewRenderer("templates", bundle)
	if err != nil {
		log.Fatalf("could not parse templates: %v", err)
	}

	sessions := auth.NewSessionManager(sessionRepo)

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo, Sessions: sessions, Renderer: renderer}
	postHandler := &handlers.PostHandler{Repo: postRepo, UploadDir: cfg.UploadDir, Renderer: renderer}
	adminHandler := &handlers.AdminHandler{Repo: userRepo, ReportDir: cfg.ReportDir, Renderer: renderer}
	musicHandler := &handlers.MusicHandler{
		Deezer:   musicapi.NewDeezerClient(cfg.DeezerAPIKey),
		Spotify:  musicapi.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret),
		Renderer: renderer,
	}
	langHandler := &handlers.LangHandler{Sessions: sessions, Bundle: bundle}

	mux := routes.SetupRoutes(userHandler, postHandler, adminHandler, musicHandler,
		langHandler, sessions, userRepo, renderer, cfg.UploadDir)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		panic(err)
	}
}
