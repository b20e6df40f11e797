package broker

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Server is an embeddable move relay. Both instances POST their moves to
// the same URL and GET the opponent's.
type Server struct {
	mu   sync.RWMutex
	last *Message
}

func NewServer() *Server {
	return &Server{}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.store(w, r)
	case http.MethodGet:
		s.serve(w)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) store(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, envelope{Success: false})
		return
	}

	s.mu.Lock()
	s.last = &msg
	s.mu.Unlock()

	log.Debug().Msgf("broker stored move %v -> %v for turn %d", msg.From, msg.To, msg.Turn)
	writeJSON(w, envelope{Success: true, Data: &msg})
}

func (s *Server) serve(w http.ResponseWriter) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	writeJSON(w, envelope{Success: true, Data: last})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("broker failed to write a response")
	}
}

// Listen serves the relay at addr until ctx is canceled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("game broker listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "failed to serve the game broker on %s", addr)
	}
	return nil
}
