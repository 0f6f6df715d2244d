// Package main is the entry point for the jazzimpro API server
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/james-see/jazzimpro/internal/config"
	"github.com/james-see/jazzimpro/pkg/api"
	"github.com/joho/godotenv"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "Server port")
	flag.Parse()
	cfg.Port = *port

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			Debug:            !cfg.IsProduction(),
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	fmt.Printf("Starting jazzimpro API server on port %s...\n", cfg.Port)
	fmt.Printf("Swagger docs available at http://localhost:%s/swagger/index.html\n", cfg.Port)

	if err := api.StartServer(cfg); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(sentryFlushTimeout)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
