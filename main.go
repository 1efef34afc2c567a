package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/osmtracker/backend/src/config"
	"github.com/username/osmtracker/backend/src/database"
	"github.com/username/osmtracker/backend/src/handlers"
	"github.com/username/osmtracker/backend/src/logger"
	"github.com/username/osmtracker/backend/src/processors"
	"github.com/username/osmtracker/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{}
	for _, origin := range config.Cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// simulationOptions builds the engine configuration from the loaded config.
func simulationOptions() processors.SimulationOptions {
	opts := processors.DefaultSimulationOptions()
	opts.Granularity = config.Cfg.SimGranularity
	opts.InterestRate = config.Cfg.SimInterestRate
	opts.PreseasonRounds = config.Cfg.SimPreseasonRounds
	opts.SettleBeforeInterest = config.Cfg.SimSettleBeforeInterest
	opts.VariableIncome = config.Cfg.SimVariableIncome
	opts.VariableIncomeFactor = config.Cfg.SimVariableIncomeFactor
	opts.StartingCashFourRounds = config.Cfg.SimStartingCashFourRounds
	opts.ClampNegativeCash = config.Cfg.SimClampNegativeCash
	return opts
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("OSM tracker backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	cashFlowProcessor := processors.NewCashFlowProcessor(simulationOptions())
	statsProcessor := processors.NewStatsProcessor(cashFlowProcessor)
	recommendationProcessor := processors.NewRecommendationProcessor()

	leagueService := services.NewLeagueService(statsProcessor, recommendationProcessor, reportCache)

	leagueHandler := handlers.NewLeagueHandler(leagueService)
	importHandler := handlers.NewImportHandler(leagueService)
	reportHandler := handlers.NewReportHandler(leagueService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)
	r.Use(handlers.MaxBodyBytesMiddleware(config.Cfg.MaxPasteSizeBytes))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "OSM Tracker Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/leagues", leagueHandler.ListLeagues)
		r.Post("/leagues", leagueHandler.CreateLeague)
		r.Get("/leagues/{id}", leagueHandler.GetLeague)
		r.Delete("/leagues/{id}", leagueHandler.DeleteLeague)

		r.Post("/leagues/{id}/template", importHandler.ImportTemplate)
		r.Post("/leagues/{id}/managers", leagueHandler.SaveManagers)
		r.Post("/leagues/{id}/transfers", importHandler.ImportTransfers)
		r.Post("/leagues/{id}/transfers/preview", importHandler.PreviewTransfers)
		r.Get("/leagues/{id}/transfers", importHandler.GetTransfers)

		r.Get("/leagues/{id}/report", reportHandler.GetLeagueReport)
		r.Get("/leagues/{id}/managers/{name}/report", reportHandler.GetManagerReport)
		r.Post("/leagues/{id}/recommendations", reportHandler.RecommendSales)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
