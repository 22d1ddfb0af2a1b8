// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_voice/internal/adapters/observability"
	"hotel_voice/internal/app"
	"hotel_voice/internal/domain"
)

const maxBodyBytes = 1 << 20

var phoneRe = regexp.MustCompile(`^\d{10}$`)

type Handlers struct {
	Q         *app.QueryService
	Calls     *app.CallLogService
	HotelName string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.root)
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/classify-query", h.classifyQuery)
	s.mux.Post("/retrieve-info", h.retrieveInfo)
	s.mux.Post("/log-conversation", h.logConversation)
	s.mux.Get("/sessions/{id}", h.getSession)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps caller mistakes to 400 and everything else to 500, with
// prefix naming the failed operation.
func writeError(w http.ResponseWriter, err error, prefix string) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	log.Error().Err(err).Msg(prefix)
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", fmt.Sprintf("%s: %v", prefix, err))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be a JSON object: "+err.Error())
		return false
	}
	return true
}

func validDate(s string) bool {
	_, err := time.Parse(app.DateLayout, s)
	return err == nil
}

func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": h.HotelName + " Voice AI backend is running."})
}

type classifyRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

func (h *Handlers) classifyQuery(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.Q.ClassifyQuery(req.Query, req.SessionID)
	if err != nil {
		writeError(w, err, "Classification failed")
		return
	}
	observability.ObserveIntent(string(out.Intent))
	annotate(r, out.SessionID, string(out.Intent))
	writeJSON(w, http.StatusOK, out)
}

type retrieveRequest struct {
	SessionID  string  `json:"session_id"`
	Intent     string  `json:"intent"`
	Topic      *string `json:"topic"`
	ChunkID    *int    `json:"chunk_id"`
	GuestCount *int    `json:"guest_count"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	RoomName   *string `json:"room_name"`
}

func (req retrieveRequest) query() (domain.RetrieveQuery, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return domain.RetrieveQuery{}, domain.Invalidf("session_id is required")
	}
	if strings.TrimSpace(req.Intent) == "" {
		return domain.RetrieveQuery{}, domain.Invalidf("intent is required")
	}
	if req.ChunkID != nil && *req.ChunkID < 0 {
		return domain.RetrieveQuery{}, domain.Invalidf("chunk_id must not be negative")
	}
	q := domain.RetrieveQuery{
		SessionID:  req.SessionID,
		Intent:     domain.Intent(req.Intent),
		Topic:      deref(req.Topic),
		ChunkID:    req.ChunkID,
		GuestCount: req.GuestCount,
		CheckIn:    deref(req.CheckIn),
		CheckOut:   deref(req.CheckOut),
		RoomName:   deref(req.RoomName),
	}
	if q.CheckIn != "" && !validDate(q.CheckIn) {
		return domain.RetrieveQuery{}, domain.Invalidf("Invalid check_in date format, should be YYYY-MM-DD")
	}
	if q.CheckOut != "" && !validDate(q.CheckOut) {
		return domain.RetrieveQuery{}, domain.Invalidf("Invalid check_out date format, should be YYYY-MM-DD")
	}
	return q, nil
}

func (h *Handlers) retrieveInfo(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	annotate(r, req.SessionID, req.Intent)
	q, err := req.query()
	if err != nil {
		writeError(w, err, "Error retrieving info")
		return
	}
	page, err := h.Q.Retrieve(r.Context(), q)
	if err != nil {
		writeError(w, err, "Error retrieving info")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

type logConversationRequest struct {
	CallTime       string  `json:"call_time"`
	PhoneNumber    string  `json:"phone_number"`
	CallOutcome    *string `json:"call_outcome"`
	CustomerName   *string `json:"customer_name"`
	RoomName       *string `json:"room_name"`
	CheckIn        *string `json:"check_in"`
	CheckOut       *string `json:"check_out"`
	NumberOfGuests *int    `json:"number_of_guests"`
	CallSummary    *string `json:"call_summary"`
}

func (req logConversationRequest) record() (domain.CallRecord, error) {
	if !phoneRe.MatchString(req.PhoneNumber) {
		return domain.CallRecord{}, domain.Invalidf("phone_number must be exactly 10 digits")
	}
	if req.CallOutcome == nil {
		return domain.CallRecord{}, domain.Invalidf("call_outcome is required")
	}
	if req.CallSummary == nil {
		return domain.CallRecord{}, domain.Invalidf("call_summary is required")
	}
	return domain.CallRecord{
		CallTime:       req.CallTime,
		PhoneNumber:    req.PhoneNumber,
		CallOutcome:    *req.CallOutcome,
		CustomerName:   deref(req.CustomerName),
		RoomName:       deref(req.RoomName),
		CheckIn:        deref(req.CheckIn),
		CheckOut:       deref(req.CheckOut),
		NumberOfGuests: req.NumberOfGuests,
		CallSummary:    *req.CallSummary,
	}, nil
}

func (h *Handlers) logConversation(w http.ResponseWriter, r *http.Request) {
	var req logConversationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := req.record()
	if err != nil {
		writeError(w, err, "Failed to log conversation")
		return
	}
	if err := h.Calls.LogConversation(r.Context(), rec); err != nil {
		writeError(w, err, "Failed to log conversation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Conversation logged successfully"})
}

func (h *Handlers) getSession(w http.ResponseWriter, r *http.Request) {
	annotate(r, chi.URLParam(r, "id"), "")
	writeJSON(w, http.StatusOK, h.Q.Session(r.Context(), chi.URLParam(r, "id")))
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
