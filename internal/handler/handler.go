// Package handler exposes the test engine and card store as a JSON API.
// It is the presentation-facing surface: every response is plain data
// the caller can re-render.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/flashquiz/internal/engine"
	"github.com/pavelanni/flashquiz/internal/i18n"
	"github.com/pavelanni/flashquiz/internal/model"
	"github.com/pavelanni/flashquiz/internal/store"
)

// Handler holds shared dependencies for HTTP handlers. Active test
// sessions live in an in-memory registry; each session is owned by one
// interactive caller, the mutex only guards the map itself.
type Handler struct {
	store  *store.Store
	engine *engine.Service
	config model.AppConfig

	mu       sync.Mutex
	sessions map[string]*model.TestSession
}

// New creates a new Handler.
func New(s *store.Store, e *engine.Service, cfg model.AppConfig) *Handler {
	return &Handler{
		store:    s,
		engine:   e,
		config:   cfg,
		sessions: make(map[string]*model.TestSession),
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/sets", h.handleListSets)
	r.Post("/sets", h.handleCreateSet)
	r.Get("/sets/{setID}", h.handleGetSet)
	r.Delete("/sets/{setID}", h.handleDeleteSet)
	r.Post("/sets/{setID}/tests", h.handleStartTest)

	r.Get("/tests/{sessionID}", h.handleGetSession)
	r.Get("/tests/{sessionID}/options", h.handleOptions)
	r.Post("/tests/{sessionID}/answer", h.handleAnswer)
	r.Post("/tests/{sessionID}/next", h.handleNext)
	r.Post("/tests/{sessionID}/previous", h.handlePrevious)
	r.Post("/tests/{sessionID}/finish", h.handleFinish)
	r.Post("/tests/{sessionID}/retry", h.handleRetry)
	r.Delete("/tests/{sessionID}", h.handleDropSession)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	respondJSON(w, status, map[string]string{"error": i18n.T(r.Context(), msgID)})
}

func (h *Handler) session(id string) *model.TestSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[id]
}

func (h *Handler) register(sess *model.TestSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sess.ID] = sess
}

type setView struct {
	Set   model.CardSet `json:"set"`
	Cards []model.Card  `json:"cards"`
}

type createSetRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Cards       []model.CardImport `json:"cards"`
}

func (h *Handler) handleListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.store.ListSets()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sets == nil {
		sets = []model.CardSet{}
	}
	respondJSON(w, http.StatusOK, sets)
}

func (h *Handler) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	var req createSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	setID, err := h.store.CreateSet(model.CardSet{Name: req.Name, Description: req.Description})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for i, c := range req.Cards {
		_, err := h.store.AddCard(model.Card{
			SetID:    setID,
			Front:    c.Front,
			Back:     c.Back,
			Position: i + 1,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	view, err := h.setView(setID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *Handler) setView(setID int64) (setView, error) {
	set, err := h.store.GetSet(setID)
	if err != nil {
		return setView{}, err
	}
	cards, err := h.store.ListCards(setID)
	if err != nil {
		return setView{}, err
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return setView{Set: set, Cards: cards}, nil
}

func (h *Handler) handleGetSet(w http.ResponseWriter, r *http.Request) {
	setID, err := strconv.ParseInt(chi.URLParam(r, "setID"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	view, err := h.setView(setID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, r, http.StatusNotFound, "SetNotFound")
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	setID, err := strconv.ParseInt(chi.URLParam(r, "setID"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	if _, err := h.store.GetSet(setID); errors.Is(err, sql.ErrNoRows) {
		respondError(w, r, http.StatusNotFound, "SetNotFound")
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.store.DeleteSet(setID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": i18n.T(r.Context(), "SetDeleted")})
}

func validMode(m model.TestMode) bool {
	switch m {
	case model.ModeFlashcard, model.ModeMultipleChoice, model.ModeTypeAnswer:
		return true
	}
	return false
}

func (h *Handler) handleStartTest(w http.ResponseWriter, r *http.Request) {
	setID, err := strconv.ParseInt(chi.URLParam(r, "setID"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	var settings model.TestSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	if !validMode(settings.Mode) {
		respondError(w, r, http.StatusBadRequest, "InvalidMode")
		return
	}

	set, err := h.store.GetSet(setID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, r, http.StatusNotFound, "SetNotFound")
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cards, err := h.store.ListCards(setID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sess, err := h.engine.StartSession(set.ID, set.Name, cards, settings)
	if errors.Is(err, engine.ErrEmptySource) {
		respondError(w, r, http.StatusBadRequest, "EmptySet")
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.register(sess)
	slog.Info("test session started", "session_id", sess.ID, "set_id", set.ID, "mode", sess.Mode, "questions", sess.TotalQuestions)
	respondJSON(w, http.StatusCreated, sess)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := h.session(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	sess := h.session(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}
	q := sess.CurrentQuestion()
	if sess.IsCompleted || q == nil {
		respondError(w, r, http.StatusBadRequest, "NoCurrentQuestion")
		return
	}

	count := h.config.OptionCount
	if v := r.URL.Query().Get("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			count = n
		}
	}

	pool := make([]string, 0, len(sess.Questions))
	for _, other := range sess.Questions {
		if other.ID != q.ID {
			pool = append(pool, other.CorrectAnswer)
		}
	}

	options := h.engine.GenerateOptions(q.CorrectAnswer, pool, count)
	respondJSON(w, http.StatusOK, map[string]any{
		"question_id": q.ID,
		"options":     options,
	})
}

type answerRequest struct {
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sess := h.session(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	err := h.engine.SubmitAnswer(r.Context(), sess, req.Answer, req.TimeSpentSeconds)
	if errors.Is(err, engine.ErrNoCurrentQuestion) {
		respondError(w, r, http.StatusBadRequest, "NoCurrentQuestion")
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	sess := h.session(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}
	h.engine.Advance(sess)
	respondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	sess := h.session(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}
	h.engine.Retreat(sess)
	respondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	sess := h.session(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}

	result, err := h.engine.Complete(sess)
	if errors.Is(err, engine.ErrSessionNotCompleted) {
		respondError(w, r, http.StatusBadRequest, "SessionNotCompleted")
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if result.IncorrectQuestions == nil {
		result.IncorrectQuestions = []model.TestQuestion{}
	}

	slog.Info("test session finished",
		"session_id", sess.ID,
		"score", result.Score,
		"total", result.TotalQuestions,
		"percentage", result.Percentage,
	)
	respondJSON(w, http.StatusOK, map[string]any{
		"result":  result,
		"message": i18n.Td(r.Context(), "TestScore", map[string]any{"Score": result.Score, "Total": result.TotalQuestions}),
	})
}

func (h *Handler) handleRetry(w http.ResponseWriter, r *http.Request) {
	sess := h.session(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}

	result, err := h.engine.Complete(sess)
	if errors.Is(err, engine.ErrSessionNotCompleted) {
		respondError(w, r, http.StatusBadRequest, "SessionNotCompleted")
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cards, err := h.store.ListCards(sess.SetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	retry, err := h.engine.RetrySession(sess.Settings, result, cards)
	if errors.Is(err, engine.ErrNothingToRetry) {
		respondError(w, r, http.StatusBadRequest, "NothingToRetry")
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.register(retry)
	slog.Info("retry session started", "session_id", retry.ID, "from", sess.ID, "questions", retry.TotalQuestions)
	respondJSON(w, http.StatusCreated, retry)
}

func (h *Handler) handleDropSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		respondError(w, r, http.StatusNotFound, "SessionNotFound")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": i18n.T(r.Context(), "SessionDeleted")})
}
