// Package http wires the inbound HTTP surface: the render endpoint,
// health check, and read-only static serving of generated tracks.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"talktrack/internal/conversation"
)

// Server wires HTTP routing for TalkTrack.
type Server struct {
	logger   *slog.Logger
	renderer *conversation.Renderer
	store    conversation.TrackStore
	staticFS http.FileSystem
}

// NewServer constructs a chi router implementing http.Handler.
func NewServer(logger *slog.Logger, renderer *conversation.Renderer, store conversation.TrackStore, staticFS http.FileSystem) http.Handler {
	srv := &Server{
		logger:   logger,
		renderer: renderer,
		store:    store,
		staticFS: staticFS,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/audio/*", http.StripPrefix("/audio/", http.FileServer(srv.staticFS)))

	r.Get("/healthz", srv.handleHealth)
	r.Post("/render-conversation", srv.handleRenderConversation)

	return r
}

type segmentBody struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type renderRequestBody struct {
	TopicID  string        `json:"topic_id"`
	Segments []segmentBody `json:"segments"`
}

type renderResponse struct {
	Status     string `json:"status"`
	AudioURL   string `json:"audio_url"`
	FileName   string `json:"file_name"`
	DurationMS int64  `json:"duration_ms"`
}

func (s *Server) handleRenderConversation(w http.ResponseWriter, r *http.Request) {
	var body renderRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.clientError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Segments) == 0 {
		s.clientError(w, http.StatusBadRequest, "no segments provided")
		return
	}

	req := conversation.RenderRequest{
		TopicID:  body.TopicID,
		Segments: make([]conversation.Segment, 0, len(body.Segments)),
	}
	for _, seg := range body.Segments {
		req.Segments = append(req.Segments, conversation.Segment{
			Speaker: seg.Speaker,
			Text:    seg.Text,
		})
	}

	track, err := s.renderer.RenderConversation(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrNoSegments):
			s.clientError(w, http.StatusBadRequest, "no segments provided")
		case errors.Is(err, conversation.ErrNoAudio):
			s.serverError(w, "no audio generated", err)
		default:
			s.serverError(w, "render failed: "+err.Error(), err)
		}
		return
	}

	// raw-bytes deployment variant: the caller stores the track itself
	if wantsRawAudio(r) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(track.Data)
		return
	}

	stored, err := s.store.Save(track.Data, req.TopicID)
	if err != nil {
		s.serverError(w, "persist track failed", err)
		return
	}

	durationMS := track.Duration.Milliseconds()
	if d, err := s.store.TrackDuration(stored.Path); err != nil {
		s.logger.Warn("recompute track duration failed",
			slog.String("file", stored.FileName),
			slog.String("error", err.Error()),
		)
	} else {
		durationMS = d.Milliseconds()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(renderResponse{
		Status:     "ok",
		AudioURL:   stored.URL,
		FileName:   stored.FileName,
		DurationMS: durationMS,
	}); err != nil {
		s.logger.Error("encode response failed", slog.String("error", err.Error()))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func wantsRawAudio(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "audio/mpeg")
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error("request error", slog.String("error", err.Error()))
	http.Error(w, msg, http.StatusInternalServerError)
}

func (s *Server) clientError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}
