package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/internal/logger"
)

// requestLogger scopes a logger to the request and records its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		log := s.logger.With(
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func(start time.Time) {
			log.Debug("request",
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}(time.Now())

		next.ServeHTTP(ww, r.WithContext(logger.NewContextWithLogger(r.Context(), log)))
	}
	return http.HandlerFunc(fn)
}

func (s *Server) log(r *http.Request) *zap.Logger {
	return logger.FromContext(r.Context(), s.logger)
}
