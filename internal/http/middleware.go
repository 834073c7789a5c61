package httpapp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/alphabot-ai/stance/internal/model"
)

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
			)
		})
	}
}

type sessionKey struct{}

// loadSession attaches the caller's session to the request context. A
// missing or unreadable cookie yields a logged out session.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r.Context(), s.codec.Read(r))
		if err != nil {
			s.writeAppError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, &sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *model.Session {
	if sess, ok := r.Context().Value(sessionKey{}).(*model.Session); ok {
		return sess
	}
	return &model.Session{}
}

// currentUser returns the logged in user id or an Unauthenticated error.
func (s *Server) currentUser(r *http.Request) (string, error) {
	return s.sessions.GetUser(*sessionFrom(r))
}

func (s *Server) allowRateLimit(w http.ResponseWriter, r *http.Request, class limitClass) bool {
	var limit int
	switch class {
	case limitLogin:
		limit = s.cfg.RateLimits.LoginPerMinute
	case limitWrite:
		limit = s.cfg.RateLimits.WritePerMinute
	}
	if limit <= 0 || s.limiter == nil {
		return true
	}
	key := fmt.Sprintf("%s:ip:%s", class, clientIP(r))
	if ok, retry := s.limiter.Allow(key, limit, time.Minute); !ok {
		writeRateLimit(w, retry)
		return false
	}
	return true
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
