package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/vocab-coach/backend/internal/auth"
	"github.com/vocab-coach/backend/internal/calibration"
	"github.com/vocab-coach/backend/internal/collections"
	"github.com/vocab-coach/backend/internal/database"
	"github.com/vocab-coach/backend/internal/extractor"
	"github.com/vocab-coach/backend/internal/grader"
	"github.com/vocab-coach/backend/internal/middleware"
	"github.com/vocab-coach/backend/internal/quiz"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// External collaborators
	wordExtractor := extractor.New()
	wordGrader := grader.New()

	// Initialize handlers
	authHandler := auth.NewHandler(db)

	collectionsStore := collections.NewStore(db)
	collectionsService := collections.NewService(collectionsStore, wordExtractor)
	collectionsHandler := collections.NewHandler(collectionsStore, collectionsService)

	calibrationHandler := calibration.NewHandler(calibration.NewStore(db))

	quizService := quiz.NewService(quiz.NewStore(db), wordGrader)
	quizHandler := quiz.NewHandler(quizService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/collections", collectionsHandler.Upload).Methods("POST")
	protected.HandleFunc("/collections", collectionsHandler.List).Methods("GET")
	protected.HandleFunc("/collections/{id}", collectionsHandler.Get).Methods("GET")
	protected.HandleFunc("/collections/{id}", collectionsHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/collections/{id}/status", collectionsHandler.Status).Methods("GET")

	protected.HandleFunc("/collections/{id}/calibration", calibrationHandler.GetSample).Methods("GET")
	protected.HandleFunc("/collections/{id}/calibration", calibrationHandler.Submit).Methods("POST")

	protected.HandleFunc("/collections/{id}/quiz", quizHandler.GetSummary).Methods("GET")
	protected.HandleFunc("/collections/{id}/quiz/next", quizHandler.NextWord).Methods("GET")
	protected.HandleFunc("/collections/{id}/quiz/answer", quizHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/collections/{id}/quiz/query", quizHandler.SubmitQuery).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
