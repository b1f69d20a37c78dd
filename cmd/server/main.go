// Package main is the entry point for the medical transcription server
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/example/medtranscribe/internal/analysis"
	"github.com/example/medtranscribe/internal/auth"
	"github.com/example/medtranscribe/internal/config"
	"github.com/example/medtranscribe/internal/handlers"
	"github.com/example/medtranscribe/internal/middleware"
	"github.com/example/medtranscribe/internal/records"
	"github.com/example/medtranscribe/internal/reports"
	"github.com/example/medtranscribe/internal/storage"
	"github.com/example/medtranscribe/internal/transcription"
)

var (
	configFile = flag.String("config", "medtranscribe.json", "Configuration file path")
	testConfig = flag.Bool("test-config", false, "Test configuration and exit")
	version    = "1.0.0"
)

func main() {
	flag.Parse()

	if err := config.LoadConfig(*configFile); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *testConfig {
		fmt.Println("Configuration test successful")
		return
	}

	fmt.Printf("\n=================================\n")
	fmt.Printf("MedTranscribe Server v%s\n", version)
	fmt.Printf("=================================\n\n")
	fmt.Printf("Remote analysis service: %s\n", config.AppConfig.Remote.BaseURL)
	if config.AppConfig.Features.EnableAuth {
		fmt.Printf("Authentication enabled\n")
	}
	if config.AppConfig.Features.EnableArchive {
		fmt.Printf("Audio archive enabled (%s)\n", config.AppConfig.Storage.DefaultProvider)
	}

	// Session-scoped stores
	store := records.NewStore()
	directory := records.NewDirectory(records.SeedPatients())

	// Remote analysis client
	client := analysis.NewClient(
		config.AppConfig.Remote.BaseURL,
		time.Duration(config.AppConfig.Remote.TimeoutSeconds)*time.Second,
	)

	// Pipeline options from configuration
	opts := []transcription.Option{
		transcription.WithRecorder(store),
		transcription.WithConcurrency(config.AppConfig.Pipeline.Concurrency),
		transcription.WithPersistDemoResults(config.AppConfig.Pipeline.PersistDemoResults),
	}

	// Audio archive if enabled
	if config.AppConfig.Features.EnableArchive {
		provider, err := createArchiveProvider()
		if err != nil {
			log.Printf("Audio archive unavailable: %v", err)
		} else {
			opts = append(opts, transcription.WithArchiver(storage.NewAudioArchive(provider)))
		}
	}

	// Progress updates over WebSocket if enabled
	var progressHub *handlers.ProgressHub
	if config.AppConfig.Features.EnableProgressUpdates {
		progressHub = handlers.NewProgressHub()
		progressHub.Run()
		opts = append(opts, transcription.WithProgressReporter(progressHub))
	}

	pipeline := transcription.NewPipeline(client, opts...)

	// Handlers
	transcribeHandler := handlers.NewTranscribeHandler(transcription.DefaultPolicy, pipeline, directory)
	recordHandler := handlers.NewRecordHandler(store)
	patientHandler := handlers.NewPatientHandler(directory)
	exportHandler := handlers.NewExportHandler(store)

	// Authentication if enabled
	authManager := auth.NewManager()
	if config.AppConfig.Features.EnableAuth {
		log.Println("Initializing authentication system")

		redirectURL := config.AppConfig.Auth.OAuthRedirectURL
		if redirectURL == "" {
			proto := "http"
			if config.AppConfig.Server.CertFile != "" && config.AppConfig.Server.KeyFile != "" {
				proto = "https"
			}
			redirectURL = fmt.Sprintf("%s://%s:%d/api/auth/callback",
				proto,
				config.AppConfig.Server.Host,
				config.AppConfig.Server.Port)
		}

		if config.AppConfig.Auth.GoogleClientID != "" {
			authManager.ConfigureGoogle(
				config.AppConfig.Auth.GoogleClientID,
				config.AppConfig.Auth.GoogleClientSecret,
				redirectURL,
			)
			log.Printf("OAuth redirects configured to: %s", redirectURL)
		}
	}
	secureCookies := config.AppConfig.Server.CertFile != "" && config.AppConfig.Server.KeyFile != ""
	authHandler := auth.NewHandler(authManager, secureCookies)

	// Router. The auth subrouter is registered first so sign-in endpoints
	// stay reachable when the rest of the API requires a session.
	router := mux.NewRouter()

	authAPI := router.PathPrefix("/api/auth").Subrouter()
	authAPI.HandleFunc("/login", authHandler.HandleLogin).Methods(http.MethodPost)
	authAPI.HandleFunc("/google", authHandler.HandleGoogleLogin).Methods(http.MethodGet)
	authAPI.HandleFunc("/callback", authHandler.HandleCallback).Methods(http.MethodGet)
	authAPI.HandleFunc("/profile", authHandler.HandleProfile).Methods(http.MethodGet)
	authAPI.HandleFunc("/logout", authHandler.HandleLogout).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()

	if config.AppConfig.Features.EnableAuth {
		api.Use(mux.MiddlewareFunc(auth.RequireAuth(authManager)))
	}

	api.HandleFunc("/transcribe", transcribeHandler.HandleTranscribe).Methods(http.MethodPost)
	api.HandleFunc("/records", recordHandler.ListRecords).Methods(http.MethodGet)
	api.HandleFunc("/records", recordHandler.SaveRecord).Methods(http.MethodPost)
	api.HandleFunc("/records/{id}", recordHandler.GetRecord).Methods(http.MethodGet)
	api.HandleFunc("/patients", patientHandler.ListPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients", patientHandler.AddPatient).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}", patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/export", exportHandler.HandleExport).Methods(http.MethodPost)

	if config.AppConfig.Features.EnableReports {
		reportHandler := handlers.NewReportHandler(reports.NewGenerator(nil))
		api.HandleFunc("/reports/templates", reportHandler.ListTemplates).Methods(http.MethodGet)
		api.HandleFunc("/reports/generate", reportHandler.GenerateReport).Methods(http.MethodPost)
	}

	if progressHub != nil {
		router.HandleFunc("/ws/progress", progressHub.ServeWs)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	handler := middleware.Chain(
		router,
		middleware.Logger(),
		middleware.Recover(),
		middleware.CORS(config.AppConfig.Server.AllowedOrigins),
	)

	addr := config.GetAddressString()
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", addr)

		var err error
		if config.AppConfig.Server.CertFile != "" && config.AppConfig.Server.KeyFile != "" {
			log.Printf("Using TLS with cert file %s and key file %s",
				config.AppConfig.Server.CertFile,
				config.AppConfig.Server.KeyFile)
			err = server.ListenAndServeTLS(
				config.AppConfig.Server.CertFile,
				config.AppConfig.Server.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(config.AppConfig.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if progressHub != nil {
		progressHub.Shutdown()
	}

	log.Println("Server shutdown complete")
}

// createArchiveProvider builds the configured audio archive backend
func createArchiveProvider() (storage.Provider, error) {
	providerType := config.AppConfig.Storage.DefaultProvider
	if providerType == "" {
		providerType = "local"
	}

	var providerConfig map[string]string
	switch providerType {
	case "s3", "amazon", "aws":
		providerConfig = config.AppConfig.Storage.S3
	case "gcs", "google":
		providerConfig = config.AppConfig.Storage.Google
	default:
		providerConfig = config.AppConfig.Storage.Local
	}

	return storage.CreateProvider(providerType, providerConfig)
}
