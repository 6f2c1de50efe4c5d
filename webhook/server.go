package webhook

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Handler processes one update to completion.
type Handler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// Deduper remembers update ids already accepted.
type Deduper interface {
	// Seen claims updateID and reports whether it had been claimed before.
	Seen(ctx context.Context, updateID int) (bool, error)
	// Release drops the claim on an update that was not queued.
	Release(ctx context.Context, updateID int) error
}

// Server receives updates from Telegram, acknowledges them at once and hands
// them to a pool of workers.
type Server struct {
	handler Handler
	dedupe  Deduper
	path    string
	workers int

	updates chan tgbotapi.Update
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewServer serves updates on path. dedupe may be nil.
func NewServer(handler Handler, path string, workers int, dedupe Deduper) *Server {
	if workers < 1 {
		workers = 1
	}
	return &Server{
		handler: handler,
		dedupe:  dedupe,
		path:    path,
		workers: workers,
		updates: make(chan tgbotapi.Update, workers*10),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hi!"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Post(s.path, s.handleUpdate)

	return r
}

// Start launches the workers. They stop after Stop closes the queue.
func (s *Server) Start(ctx context.Context) {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for update := range s.updates {
				s.process(ctx, update)
			}
		}()
	}
}

// Stop closes the queue and waits for queued updates to finish.
// The HTTP listener must be shut down first.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.updates)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Server) process(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[webhook] update:%d panic:%v", update.UpdateID, r)
		}
	}()
	s.handler.HandleUpdate(ctx, update)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Printf("[webhook] bad update: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	claimed := false
	if s.dedupe != nil {
		seen, err := s.dedupe.Seen(r.Context(), update.UpdateID)
		if err != nil {
			// fail open and process the update
			log.Printf("[webhook] dedupe update:%d error:%v", update.UpdateID, err)
		} else if seen {
			w.WriteHeader(http.StatusOK)
			return
		} else {
			claimed = true
		}
	}

	if !s.enqueue(r.Context(), update) {
		log.Printf("[webhook] update:%d dropped", update.UpdateID)
		if claimed {
			// the request context may already be done
			if err := s.dedupe.Release(context.Background(), update.UpdateID); err != nil {
				log.Printf("[webhook] release update:%d error:%v", update.UpdateID, err)
			}
		}
		// a non-2xx status makes Telegram deliver the update again
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) enqueue(ctx context.Context, update tgbotapi.Update) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.updates <- update:
		return true
	case <-ctx.Done():
		return false
	}
}
