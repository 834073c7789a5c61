package httpapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/friend"
	"github.com/alphabot-ai/stance/internal/label"
	"github.com/alphabot-ai/stance/internal/respond"
	"github.com/alphabot-ai/stance/internal/side"
	"github.com/alphabot-ai/stance/internal/topic"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// humanizer renders a coded error for clients, replacing embedded ids with
// display names.
type humanizer func(ctx context.Context, e *apperr.Error) (string, error)

type argKind int

const (
	argRaw argKind = iota
	argUser
	argTopic
	argResponse
)

func (s *Server) registerError(code string, h humanizer) {
	if s.humanizers == nil {
		s.humanizers = make(map[string]humanizer)
	}
	s.humanizers[code] = h
}

func (s *Server) registerErrors() {
	s.registerError(topic.CodeAuthorMismatch, s.resolveArgs(argUser, argTopic))
	s.registerError(respond.CodeAuthorMismatch, s.resolveArgs(argUser, argResponse))
	s.registerError(label.CodeAuthorMismatch, s.resolveArgs(argUser, argRaw))
	s.registerError(side.CodeExists, s.resolveArgs(argUser, argTopic))
	s.registerError(side.CodeMissing, s.resolveArgs(argUser, argTopic))
	s.registerError(friend.CodeRequestExists, s.resolveArgs(argUser, argUser))
	s.registerError(friend.CodeRequestMissing, s.resolveArgs(argUser, argUser))
	s.registerError(friend.CodeFriendMissing, s.resolveArgs(argUser, argUser))
	s.registerError(friend.CodeAlreadyFriends, s.resolveArgs(argUser, argUser))
}

// resolveArgs builds a humanizer that resolves the i-th argument according
// to kinds[i]. Extra arguments are left raw.
func (s *Server) resolveArgs(kinds ...argKind) humanizer {
	return func(ctx context.Context, e *apperr.Error) (string, error) {
		args := make([]any, len(e.Args))
		for i, arg := range e.Args {
			id := fmt.Sprint(arg)
			kind := argRaw
			if i < len(kinds) {
				kind = kinds[i]
			}
			var (
				names []string
				err   error
			)
			switch kind {
			case argUser:
				names, err = s.auth.IDsToUsernames(ctx, []string{id})
			case argTopic:
				names, err = s.topics.IDsToTitles(ctx, []string{id})
			case argResponse:
				names, err = s.format.ResponseTitles.IDsToTitles(ctx, []string{id})
			default:
				names = []string{id}
			}
			if err != nil {
				return "", err
			}
			args[i] = names[0]
		}
		return e.FormatWith(args...), nil
	}
}

// writeAppError maps err to a status code and a client message. Errors
// without a kind are logged and reported as internal.
func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInternal {
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Kind: apperr.KindInternal.String()})
		return
	}

	message := e.Error()
	if h, ok := s.humanizers[e.Code]; ok {
		if humanized, herr := h(r.Context(), e); herr == nil {
			message = humanized
		} else {
			s.logger.Warn("humanize error", zap.String("code", e.Code), zap.Error(herr))
		}
	}
	s.logger.Debug("request rejected",
		zap.String("kind", e.Kind.String()),
		zap.String("error", message),
		zap.String("requestID", chimiddleware.GetReqID(r.Context())),
	)
	writeJSON(w, e.Kind.HTTPStatus(), errorBody{Error: message, Kind: e.Kind.String()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRateLimit(w http.ResponseWriter, retry time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate limit exceeded",
		"kind":        "rate_limited",
		"retry_after": int(retry.Seconds()),
	})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "not found", Kind: apperr.KindNotFound.String()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", Kind: "method_not_allowed"})
}
