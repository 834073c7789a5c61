package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/alphabot-ai/stance/internal/client"
	"github.com/alphabot-ai/stance/internal/config"
	httpapp "github.com/alphabot-ai/stance/internal/http"
	"github.com/alphabot-ai/stance/internal/rate"
	"github.com/alphabot-ai/stance/internal/store/sqlite"
	"github.com/alphabot-ai/stance/internal/view"
)

const version = "stance v0.1.0"

func main() {
	if len(os.Args) < 2 || (strings.HasPrefix(os.Args[1], "-") && !isFlagCommand(os.Args[1])) {
		runServer()
		return
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "server", "serve":
		runServer()
	case "topics", "read":
		cmdTopics(args)
	case "-v", "--version", "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func isFlagCommand(arg string) bool {
	switch arg {
	case "-v", "--version", "-h", "--help":
		return true
	}
	return false
}

func printUsage() {
	fmt.Println(`stance - discussion forum backend

Usage: stance <command> [options]

Commands:
  server              Start the server (default if no command)
  topics              List topics from a running server
  version             Print the version

Examples:
  stance server
  stance topics --url http://localhost:8080 --search tabs
  stance topics --sort engagement

Environment Variables (server):
  STANCE_ADDR               Listen address (default: :8080, or :$PORT)
  STANCE_DB                 Database path (default: stance.db)
  STANCE_ENV                development or production (default: production)
  STANCE_SESSION_TTL        Session lifetime (default: 168h)
  STANCE_COOKIE_HASH_KEY    Hex cookie signing key (random if unset)
  STANCE_COOKIE_BLOCK_KEY   Hex cookie encryption key, 16/24/32 bytes
  STANCE_CORS_ORIGINS       Comma-separated allowed origins
  STANCE_BCRYPT_COST        Password hashing cost
  STANCE_RL_LOGIN_PER_MIN   Login and signup attempts per IP per minute
  STANCE_RL_WRITE_PER_MIN   Writes per IP per minute`)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runServer() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open db", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer store.Close()

	limiter := rate.NewMemory()
	server, err := httpapp.NewServer(store, limiter, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweep(ctx, server, limiter, logger)

	go func() {
		logger.Info("stance listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// sweep drops expired sessions and idle rate limit buckets until ctx ends.
func sweep(ctx context.Context, server *httpapp.Server, limiter *rate.MemoryLimiter, logger *zap.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := server.PurgeSessions(ctx)
			if err != nil {
				logger.Warn("purge sessions", zap.Error(err))
				continue
			}
			logger.Debug("swept", zap.Int64("sessions", n), zap.Int("buckets", limiter.Prune()))
		}
	}
}

func cmdTopics(args []string) {
	fs := flag.NewFlagSet("topics", flag.ExitOnError)
	url := fs.String("url", "http://localhost:8080", "Server URL")
	search := fs.String("search", "", "Case-insensitive title filter")
	sort := fs.String("sort", "", "Sort: newest, random, engagement")
	fs.Parse(args)

	c := client.New(strings.TrimSuffix(*url, "/"))
	var (
		topics []view.Topic
		err    error
	)
	if *sort != "" {
		topics, err = c.SortTopics(*sort)
	} else {
		topics, err = c.Topics(*search)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, t := range topics {
		fmt.Printf("%d. %s\n", i+1, t.Title)
		fmt.Printf("   by %s | %s\n", t.Author, t.CreatedAt.Format("2006-01-02 15:04"))
		if t.Description != "" {
			fmt.Printf("   %s\n", t.Description)
		}
		fmt.Println()
	}
}
