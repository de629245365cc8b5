package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/studioflow/agency-api/internal/auth"
	"github.com/studioflow/agency-api/internal/clients"
	"github.com/studioflow/agency-api/internal/config"
	"github.com/studioflow/agency-api/internal/database"
	"github.com/studioflow/agency-api/internal/deals"
	"github.com/studioflow/agency-api/internal/jobs"
	"github.com/studioflow/agency-api/internal/logger"
	"github.com/studioflow/agency-api/internal/middleware"
	"github.com/studioflow/agency-api/internal/models"
	"github.com/studioflow/agency-api/internal/notify"
	"github.com/studioflow/agency-api/internal/profitshare"
	"github.com/studioflow/agency-api/internal/reporting"
	"github.com/studioflow/agency-api/internal/tasks"
	"github.com/studioflow/agency-api/internal/users"
	"github.com/studioflow/agency-api/internal/utils/db"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg)

	if err := auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationHours)*time.Hour); err != nil {
		log.Fatal("auth init: ", err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("database connection: ", err)
	}

	if err := database.Migrate(gormDB); err != nil {
		log.Fatal("migration: ", err)
	}
	if cfg.Seed {
		if err := database.Seed(gormDB); err != nil {
			log.Fatal("seed: ", err)
		}
	}

	// Task status vocabulary is configuration, not code.
	workflow := models.WorkflowByName(cfg.Tasks.Workflow)
	if len(cfg.Tasks.CustomStatuses) > 0 {
		custom, ok := models.CustomWorkflow("custom", cfg.Tasks.CustomStatuses)
		if !ok {
			log.Fatal("tasks.custom_statuses must be non-empty and end in \"Done\"")
		}
		workflow = custom
	}

	webhook := notify.NewWebhook(cfg.Webhooks.DealWonURL)

	// Handlers
	userHandler := users.NewHandler(gormDB)
	clientHandler := clients.NewHandler(gormDB)
	dealHandler := deals.NewHandler(gormDB, webhook)
	shareHandler := profitshare.NewHandler(gormDB, cfg.ProfitShare.Strict)
	jobHandler := jobs.NewHandler(gormDB)
	taskHandler := tasks.NewHandler(gormDB, workflow)
	reportHandler := reporting.NewHandler(gormDB)

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/login", userHandler.Login).Methods("POST")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.Middleware)

	// Users
	api.Handle("/users", auth.RequireAdmin(http.HandlerFunc(userHandler.Create))).Methods("POST")
	api.HandleFunc("/users", userHandler.List).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.FindByID).Methods("GET")
	api.Handle("/users/{id}", auth.RequireAdmin(http.HandlerFunc(userHandler.Update))).Methods("PUT")
	api.Handle("/users/{id}", auth.RequireAdmin(http.HandlerFunc(userHandler.Delete))).Methods("DELETE")

	// Clients
	api.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	api.HandleFunc("/clients", clientHandler.List).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.FindByID).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientHandler.Delete).Methods("DELETE")

	// Deals & pipeline
	api.HandleFunc("/deals", dealHandler.Create).Methods("POST")
	api.HandleFunc("/deals", dealHandler.List).Methods("GET")
	api.HandleFunc("/deals/board", dealHandler.Board).Methods("GET")
	api.HandleFunc("/deals/{id}", dealHandler.FindByID).Methods("GET")
	api.HandleFunc("/deals/{id}", dealHandler.Update).Methods("PUT")
	api.HandleFunc("/deals/{id}", dealHandler.Delete).Methods("DELETE")
	api.HandleFunc("/deals/{id}/stage", dealHandler.MoveStage).Methods("PATCH")

	// Profit shares
	api.HandleFunc("/deals/{id}/shares", shareHandler.SetShares).Methods("PUT")
	api.HandleFunc("/deals/{id}/shares", shareHandler.GetShares).Methods("GET")

	// Jobs & assignments
	api.HandleFunc("/jobs", jobHandler.Create).Methods("POST")
	api.HandleFunc("/jobs", jobHandler.List).Methods("GET")
	api.HandleFunc("/jobs/{id}", jobHandler.FindByID).Methods("GET")
	api.HandleFunc("/jobs/{id}/complete", jobHandler.Complete).Methods("POST")
	api.HandleFunc("/jobs/{id}/assignments/{userID}", jobHandler.Assign).Methods("PUT")
	api.HandleFunc("/jobs/{id}/assignments/{userID}", jobHandler.Unassign).Methods("DELETE")

	// Tasks
	api.HandleFunc("/jobs/{id}/tasks", taskHandler.Create).Methods("POST")
	api.HandleFunc("/jobs/{id}/tasks", taskHandler.ListByJob).Methods("GET")
	api.HandleFunc("/tasks/{id}/status", taskHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods("DELETE")

	// Reporting (read-only)
	api.HandleFunc("/reports/calendar", reportHandler.Calendar).Methods("GET")
	api.HandleFunc("/reports/clients/{id}", reportHandler.ClientSummary).Methods("GET")
	api.HandleFunc("/reports/users/{id}/workload", reportHandler.UserWorkload).Methods("GET")
	api.HandleFunc("/reports/dashboard", reportHandler.Dashboard).Methods("GET")

	handler := middleware.NewCORS(cfg)(middleware.PanicRecovery(r))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("server listening", "addr", addr, "workflow", workflow.Name)
	log.Fatal(http.ListenAndServe(addr, handler))
}
