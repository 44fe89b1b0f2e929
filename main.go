package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"statusplay/internal/app"
	"statusplay/internal/backend"
	"statusplay/internal/clickhouse"
	"statusplay/internal/config"
	"statusplay/internal/handlers"
	"statusplay/internal/logger"
	"statusplay/internal/mocks"
	"statusplay/internal/pubsub"
	"statusplay/internal/store"
	"statusplay/internal/ws"
)

var (
	dataStore store.Store
	chClient  app.Occupancy
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)
	logger.Info("Starting StatusPlay dashboard service")

	// Initialize local store
	switch cfg.DBDriver {
	case "memory":
		dataStore = store.NewMemoryStore(cfg.ChatHistoryLimit)
		logger.Info("Using in-memory store")
	case "sqlite":
		dataStore, err = store.NewSQLiteStore(cfg.SQLiteFile, cfg.ChatHistoryLimit)
		if err != nil {
			logger.Error("Failed to initialize SQLite", "error", err)
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		logger.Info("Connected to SQLite store", "file", cfg.SQLiteFile)
	case "postgres":
		if cfg.DatabaseURL == "" {
			logger.Error("DATABASE_URL environment variable is required for postgres driver")
			log.Fatal("DATABASE_URL environment variable is required for postgres driver")
		}
		dataStore, err = store.NewPostgresStore(cfg.DatabaseURL, cfg.ChatHistoryLimit)
		if err != nil {
			logger.Error("Failed to initialize Postgres", "error", err)
			log.Fatalf("Failed to initialize Postgres: %v", err)
		}
		logger.Info("Connected to Postgres store")
	default:
		logger.Error("Unknown DB_DRIVER", "driver", cfg.DBDriver)
		log.Fatalf("Unknown DB_DRIVER: %s (valid: memory, sqlite, postgres)", cfg.DBDriver)
	}
	defer dataStore.Close()

	// Initialize pub/sub (NATS JetStream, or embedded NATS for development)
	var upstream pubsub.Upstream
	if cfg.Environment == "" || cfg.Environment == "development" {
		logger.Info("Starting embedded NATS server for local development")
		embeddedNats, err := pubsub.NewEmbeddedNATSPubSub(pubsub.EmbeddedNATSOptions{
			Port:    -1,
			Subject: cfg.NATSSubject,
		})
		if err != nil {
			logger.Error("Failed to initialize embedded NATS", "error", err)
			log.Fatalf("Failed to initialize embedded NATS: %v", err)
		}
		defer embeddedNats.Close()
		upstream = embeddedNats
		logger.Info("Embedded NATS server ready", "url", embeddedNats.ServerURL())
	} else {
		logger.Info("Using real NATS JetStream for production")
		realNats, err := pubsub.NewNATSPubSub(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			logger.Error("Failed to initialize NATS", "error", err)
			log.Fatalf("Failed to initialize NATS: %v", err)
		}
		defer realNats.Close()
		upstream = realNats
		logger.Info("Connected to NATS", "url", cfg.NATSURL)
	}
	events := pubsub.NewWithUpstream(upstream)

	// Initialize occupancy tracking (ClickHouse in production, mock in dev)
	if cfg.Environment == "production" && cfg.ClickHouseAddr != "" {
		real, err := clickhouse.NewClient(cfg.ClickHouseAddr, cfg.ClickHouseDB, cfg.ClickHouseUser, cfg.ClickHousePassword)
		if err != nil {
			logger.Error("Failed to initialize ClickHouse", "error", err, "address", cfg.ClickHouseAddr)
			log.Fatalf("Failed to initialize ClickHouse: %v", err)
		}
		defer real.Close()
		chClient = real
		logger.Info("Connected to ClickHouse", "address", cfg.ClickHouseAddr, "database", cfg.ClickHouseDB)
	} else {
		chClient = mocks.NewMockOccupancyClient()
	}

	// Wire the orchestrator against the upstream club API
	client := backend.New(cfg.APIBase)
	application := app.New(cfg, client, dataStore, events, chClient)

	// Restore the previous session if a username survives in the store
	if name, err := application.Resume(context.Background()); err != nil {
		logger.Warn("Failed to resume session", "error", err)
	} else if name != "" {
		logger.Info("Resumed session", "user", name)
	}

	// WebSocket fan-out
	hub := ws.NewHub(events)
	go hub.Run()

	// Set up HTTP routes
	mux := http.NewServeMux()

	// Static files
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	api := handlers.NewAPIHandlers(application, events)

	// Session API
	mux.HandleFunc("/api/login", api.Login)
	mux.HandleFunc("/api/logout", api.Logout)

	// Page API
	mux.HandleFunc("/api/page", api.GetPage)
	mux.HandleFunc("/api/views", api.ListViews)
	mux.HandleFunc("/api/view", api.SwitchView)
	mux.HandleFunc("/api/refresh", api.RefreshNow)

	// Action API
	mux.HandleFunc("/api/presence", api.SetPresence)
	mux.HandleFunc("/api/profile", api.SaveProfile)
	mux.HandleFunc("/api/chat/send", api.SendChatMessage)
	mux.HandleFunc("/api/team/change-request", api.RequestTeamChange)

	// Realtime updates
	mux.HandleFunc("/api/events", api.EventsSSE)
	mux.HandleFunc("/ws", hub.ServeWS)

	// Health check endpoints
	mux.HandleFunc("/api/health", healthHandler)
	mux.HandleFunc("/healthz", livenessHandler) // Kubernetes liveness probe
	mux.HandleFunc("/readyz", readinessHandler) // Kubernetes readiness probe

	addr := "0.0.0.0:" + cfg.Port
	logger.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Server failed", "error", err)
		log.Fatal(err)
	}
}

// healthHandler reports overall health with per-dependency checks
func healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	// Check store connectivity
	if dataStore != nil {
		if _, err := dataStore.Username(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["store"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			checks["store"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	} else {
		checks["store"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	// Check occupancy tracker
	if chClient != nil {
		if _, err := chClient.PeakNote(r.Context()); err != nil {
			// Occupancy history is best-effort, never degrades health
			checks["occupancy"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			checks["occupancy"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	} else {
		checks["occupancy"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().Unix(),
	})
}

// livenessHandler handles Kubernetes liveness probes
func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// readinessHandler handles Kubernetes readiness probes
// Returns 200 if the application is ready to serve traffic
func readinessHandler(w http.ResponseWriter, r *http.Request) {
	if dataStore != nil {
		if _, err := dataStore.Username(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":    "not_ready",
				"reason":    "store_unavailable",
				"timestamp": time.Now().Unix(),
			})
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
	})
}
