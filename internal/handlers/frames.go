package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/ring-traffic/internal/models"
	"github.com/ukydev/ring-traffic/internal/telemetry"
)

// FrameSource returns the latest published frame.
type FrameSource interface {
	Latest() (models.Frame, bool)
}

// FrameHandler serves the simulation state to observers
type FrameHandler struct {
	frames FrameSource
	track  models.TrackInfo
}

// NewFrameHandler creates a handler over a frame source and fixed track
// geometry
func NewFrameHandler(frames FrameSource, track models.TrackInfo) *FrameHandler {
	return &FrameHandler{frames: frames, track: track}
}

// Frame returns the latest frame. ?format=bson selects BSON.
func (h *FrameHandler) Frame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	enc := telemetry.EncodingJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := telemetry.ParseEncoding(f)
		if err != nil {
			http.Error(w, "Unknown format", http.StatusBadRequest)
			return
		}
		enc = parsed
	}

	frame, ok := h.frames.Latest()
	if !ok {
		http.Error(w, "No frame yet", http.StatusServiceUnavailable)
		return
	}

	data, err := telemetry.EncodeFrame(enc, frame)
	if err != nil {
		log.WithError(err).Error("Failed to encode frame")
		http.Error(w, "Failed to encode frame", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", enc.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Track returns the ring geometry
func (h *FrameHandler) Track(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.track)
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
