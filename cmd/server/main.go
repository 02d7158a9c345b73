package main

import (
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/arijit-sen/ludo/internal/auth"
	"github.com/arijit-sen/ludo/internal/database"
	"github.com/arijit-sen/ludo/internal/game"
	"github.com/arijit-sen/ludo/internal/handlers"
	"github.com/arijit-sen/ludo/internal/middleware"
	"github.com/arijit-sen/ludo/internal/presence"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := auth.Init(); err != nil {
		logger.Fatalf("failed to init auth keys: %v", err)
	}
	if err := database.Connect(); err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	tracker, err := presence.Connect(logger)
	if err != nil {
		logger.Warnf("presence disabled: %v", err)
		tracker = nil
	}

	registry := game.NewRegistry()
	gameServer := handlers.NewGameServer(registry, tracker)

	mux := http.NewServeMux()
	mux.HandleFunc("/user/create", handlers.UserCreateHandler)
	mux.HandleFunc("/user/login", handlers.UserLoginHandler)
	mux.HandleFunc("/game/ws", gameServer.GameWSHandler(logger))

	handler := middleware.LogMiddleware(logger)(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Infof("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
