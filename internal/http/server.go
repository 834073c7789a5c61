package httpapp

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/alphabot-ai/stance/internal/auth"
	"github.com/alphabot-ai/stance/internal/config"
	"github.com/alphabot-ai/stance/internal/friend"
	"github.com/alphabot-ai/stance/internal/label"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/rate"
	"github.com/alphabot-ai/stance/internal/respond"
	"github.com/alphabot-ai/stance/internal/session"
	"github.com/alphabot-ai/stance/internal/side"
	"github.com/alphabot-ai/stance/internal/store"
	"github.com/alphabot-ai/stance/internal/topic"
	"github.com/alphabot-ai/stance/internal/view"
	"github.com/alphabot-ai/stance/internal/vote"
)

type Server struct {
	auth           *auth.Service
	sessions       *session.Service
	topics         *topic.Service
	toTopic        *respond.Service
	toResponse     *respond.Service
	sides          *side.Service
	topicLabels    *label.Service
	responseLabels *label.Service
	friends        *friend.Service
	votes          *vote.Service

	format     *view.Formatter
	codec      *session.Codec
	limiter    rate.Limiter
	cfg        config.Config
	logger     *zap.Logger
	humanizers map[string]humanizer
	handler    http.Handler
}

// NewServer wires every concept to st and builds the router.
func NewServer(st store.Store, limiter rate.Limiter, cfg config.Config, logger *zap.Logger) (*Server, error) {
	hashKey, err := decodeKey("STANCE_COOKIE_HASH_KEY", cfg.CookieHashKey)
	if err != nil {
		return nil, err
	}
	blockKey, err := decodeKey("STANCE_COOKIE_BLOCK_KEY", cfg.CookieBlockKey)
	if err != nil {
		return nil, err
	}
	switch len(blockKey) {
	case 0, 16, 24, 32:
	default:
		return nil, fmt.Errorf("STANCE_COOKIE_BLOCK_KEY must be 16, 24 or 32 bytes, got %d", len(blockKey))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		auth:           auth.NewService(st, cfg.BcryptCost),
		sessions:       session.NewService(st, cfg.SessionTTL),
		topics:         topic.NewService(st),
		toTopic:        respond.NewService(st, model.KindTopic),
		toResponse:     respond.NewService(st, model.KindResponse),
		sides:          side.NewService(st),
		topicLabels:    label.NewService(st, model.KindTopic),
		responseLabels: label.NewService(st, model.KindResponse),
		friends:        friend.NewService(st),
		votes:          vote.NewService(st),
		codec:          session.NewCodec(hashKey, blockKey, cfg.SessionTTL, !cfg.Development()),
		limiter:        limiter,
		cfg:            cfg,
		logger:         logger,
	}
	s.format = &view.Formatter{
		Usernames:   s.auth,
		TopicTitles: s.topics,
		ResponseTitles: view.Chain{
			Resolvers: []view.TitleResolver{s.toTopic, s.toResponse},
			Missing:   respond.DeletedResponse,
		},
	}
	s.registerErrors()
	s.handler = s.router()
	return s, nil
}

func decodeKey(name, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be hex encoded: %w", name, err)
	}
	return key, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// PurgeSessions drops expired session bindings.
func (s *Server) PurgeSessions(ctx context.Context) (int64, error) {
	return s.sessions.PurgeExpired(ctx)
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Get("/", s.serveConsole)
	r.Get("/console.js", serveConsoleJS)

	r.Group(func(api chi.Router) {
		api.Use(s.loadSession)
		for _, rt := range s.routes() {
			api.Method(rt.method, rt.pattern, s.adapt(rt))
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		methodNotAllowed(w)
	})
	return r
}
