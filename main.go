package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"cinevision/api"
	"cinevision/config"
	"cinevision/handlers"
	"cinevision/services/ai"
	"cinevision/services/catalog"
	"cinevision/services/prefs"
	"cinevision/services/recommend"
	"cinevision/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		})
	}

	if cfg.TMDBAPIKey == "" {
		log.Printf("[main] WARNING: TMDB_API_KEY not set, catalog lookups will return empty results")
	}
	if cfg.LLMAPIKey == "" {
		log.Printf("[main] WARNING: LLM_API_KEY not set, AI suggestions will return empty results")
	}

	httpc := &http.Client{Timeout: 15 * time.Second}
	catalogClient := catalog.New(cfg.TMDBAPIKey, httpc, cfg.CacheTTL)

	store, err := prefs.NewService(cfg.DataDir)
	if err != nil {
		log.Fatalf("[main] failed to initialize preference store: %v", err)
	}

	aiClient := ai.NewClient(cfg.LLMAPIKey, cfg.LLMAPIURL, nil)
	aiService := ai.NewService(aiClient, catalogClient, store)
	recommender := recommend.NewService(catalogClient, store)

	moviesHandler := handlers.NewMoviesHandler(catalogClient)
	libraryHandler := handlers.NewLibraryHandler(store)
	recommendHandler := handlers.NewRecommendHandler(recommender)
	aiHandler := handlers.NewAIHandler(aiService)
	versionHandler := handlers.NewVersionHandler()

	r := utils.NewRouter()
	r.Use(api.RequestLogger())

	r.HandleFunc("/api/version", versionHandler.GetVersion).Methods(http.MethodGet)

	r.HandleFunc("/api/movies/search", moviesHandler.Search).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/suggest", moviesHandler.Suggest).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/trending", moviesHandler.Trending).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/cache", moviesHandler.ClearCache).Methods(http.MethodDelete)
	r.HandleFunc("/api/movies/{movieID}", moviesHandler.Details).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/{movieID}/credits", moviesHandler.Credits).Methods(http.MethodGet)

	r.HandleFunc("/api/library/ratings", libraryHandler.ListRatings).Methods(http.MethodGet)
	r.HandleFunc("/api/library/favorites", libraryHandler.ListFavorites).Methods(http.MethodGet)
	r.HandleFunc("/api/library/ratings/{movieID}", libraryHandler.GetRating).Methods(http.MethodGet)
	r.HandleFunc("/api/library/ratings/{movieID}", libraryHandler.SetRating).Methods(http.MethodPut)
	r.HandleFunc("/api/library/ratings/{movieID}", libraryHandler.RemoveRating).Methods(http.MethodDelete)
	r.HandleFunc("/api/library/watchlist", libraryHandler.ListWatchlist).Methods(http.MethodGet)
	r.HandleFunc("/api/library/watchlist/{movieID}", libraryHandler.GetWatchlistStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/library/watchlist/{movieID}", libraryHandler.AddToWatchlist).Methods(http.MethodPut)
	r.HandleFunc("/api/library/watchlist/{movieID}", libraryHandler.RemoveFromWatchlist).Methods(http.MethodDelete)
	r.HandleFunc("/api/library/export", libraryHandler.Export).Methods(http.MethodGet)
	r.HandleFunc("/api/library/import", libraryHandler.Import).Methods(http.MethodPost)
	r.HandleFunc("/api/library", libraryHandler.Clear).Methods(http.MethodDelete)

	r.HandleFunc("/api/recommendations", recommendHandler.Shortlist).Methods(http.MethodGet)

	// AI requests burn model tokens; keep them per-IP limited.
	aiLimiter := api.NewIPRateLimiter(rate.Every(time.Minute/time.Duration(cfg.AIRequestsPerMinute)), cfg.AIRequestsPerMinute)
	r.HandleFunc("/api/ai/recommendations", api.RateLimit(aiLimiter, aiHandler.Recommend)).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
