package main

import (
	"log"
	"os"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/middleware"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	db.Init()

	r := gin.Default()

	// Cookie sessions: the voting and pet endpoints take the caller's
	// identity from here, never from request bodies.
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("dijitalpati_session", store))

	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Dijital Pati API starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
