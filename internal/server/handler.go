// Package server exposes the planning and scheduling engine as JSON command
// handlers consumed by the conversational front-end.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/config"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/focus"
	"github.com/studycoach/studycoach/internal/planner"
	"github.com/studycoach/studycoach/internal/recap"
	"github.com/studycoach/studycoach/internal/reminders"
	"github.com/studycoach/studycoach/internal/review"
)

// Handler routes front-end commands to the four scheduling cores and the
// persistent store. One instance serves all users; per-user serialization of
// session snapshots is the front-end's responsibility.
type Handler struct {
	cfg         *config.Config
	assignments assignment.Repository
	sessions    focus.SessionRepository
	records     focus.RecordRepository
	reviews     review.Repository
	scheduler   reminders.Scheduler
	manager     *focus.Manager
	now         func() time.Time
}

// NewHandler creates a Handler on the system clock. scheduler may be nil
// when no notification service is configured.
func NewHandler(
	cfg *config.Config,
	assignments assignment.Repository,
	sessions focus.SessionRepository,
	records focus.RecordRepository,
	reviews review.Repository,
	scheduler reminders.Scheduler,
) *Handler {
	return NewHandlerWithClock(cfg, assignments, sessions, records, reviews, scheduler, time.Now)
}

// NewHandlerWithClock creates a Handler that reads "now" from the given
// function.
func NewHandlerWithClock(
	cfg *config.Config,
	assignments assignment.Repository,
	sessions focus.SessionRepository,
	records focus.RecordRepository,
	reviews review.Repository,
	scheduler reminders.Scheduler,
	now func() time.Time,
) *Handler {
	return &Handler{
		cfg:         cfg,
		assignments: assignments,
		sessions:    sessions,
		records:     records,
		reviews:     reviews,
		scheduler:   scheduler,
		manager:     focus.NewManagerWithClock(now),
		now:         now,
	}
}

// Routes returns the command mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/assignments", h.handleCreateAssignment)
	mux.HandleFunc("POST /v1/assignments/{id}/complete", h.handleCompleteAssignment)
	mux.HandleFunc("GET /v1/plan", h.handlePlan)
	mux.HandleFunc("POST /v1/sessions/start", h.handleStartSession)
	mux.HandleFunc("POST /v1/sessions/pause", h.handlePauseSession)
	mux.HandleFunc("POST /v1/sessions/resume", h.handleResumeSession)
	mux.HandleFunc("POST /v1/sessions/extend", h.handleExtendSession)
	mux.HandleFunc("POST /v1/sessions/finish", h.handleFinishSession)
	mux.HandleFunc("GET /v1/sessions/status", h.handleSessionStatus)
	mux.HandleFunc("POST /v1/reviews/answer", h.handleAnswerReview)
	mux.HandleFunc("GET /v1/reviews/due", h.handleDueReviews)
	mux.HandleFunc("GET /v1/recap", h.handleRecap)
	return mux
}

func (h *Handler) today() dates.Date {
	return dates.New(h.now())
}

type createAssignmentRequest struct {
	UserID           string `json:"user_id"`
	ClassName        string `json:"class_name"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	DueDate          string `json:"due_date"`
	DueTime          string `json:"due_time"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

type createAssignmentResponse struct {
	Assignment assignment.Assignment `json:"assignment"`
	Warning    string                `json:"warning,omitempty"`
}

func (h *Handler) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Title == "" {
		respondError(w, http.StatusBadRequest, "user_id and title are required")
		return
	}
	if _, err := dates.Parse(req.DueDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.EstimatedMinutes < 0 {
		respondError(w, http.StatusBadRequest, "estimated_minutes must be positive")
		return
	}
	if req.EstimatedMinutes == 0 {
		req.EstimatedMinutes = assignment.DefaultEstimatedMinutes
	}

	a := assignment.Assignment{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		ClassName:        req.ClassName,
		Title:            req.Title,
		Description:      req.Description,
		DueDate:          req.DueDate,
		DueTime:          req.DueTime,
		EstimatedMinutes: req.EstimatedMinutes,
		Status:           assignment.StatusNotStarted,
		Priority:         assignment.PriorityMedium,
	}
	if err := h.assignments.Create(r.Context(), &a); err != nil {
		respondInternalError(w, "create assignment", err)
		return
	}

	response := createAssignmentResponse{Assignment: a}
	if warning := h.scheduleReminder(r, a); warning != "" {
		response.Warning = warning
	}
	respondJSON(w, http.StatusCreated, response)
}

// scheduleReminder asks the notification service for a due-date alert.
// Scheduling failures never fail the assignment creation; they come back as
// a warning for the front-end to speak.
func (h *Handler) scheduleReminder(r *http.Request, a assignment.Assignment) string {
	if h.scheduler == nil {
		return ""
	}

	triggerAt, err := reminders.TriggerAt(a.DueDate, a.DueTime, h.cfg.Reminders.Timezone, h.cfg.Reminders.LeadMinutes)
	if err != nil {
		slog.Warn("failed to compute reminder trigger", "assignment_id", a.ID, "error", err)
		return "reminder could not be scheduled"
	}

	err = h.scheduler.Schedule(r.Context(), reminders.Reminder{
		UserID:    a.UserID,
		Label:     a.Title,
		TriggerAt: triggerAt,
		Timezone:  h.cfg.Reminders.Timezone,
	})
	if errors.Is(err, reminders.ErrPermissionDenied) {
		return "reminder permission not granted"
	}
	if err != nil {
		slog.Warn("failed to schedule reminder", "assignment_id", a.ID, "error", err)
		return "reminder could not be scheduled"
	}
	return ""
}

func (h *Handler) handleCompleteAssignment(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	id := r.PathValue("id")
	if userID == "" || id == "" {
		respondError(w, http.StatusBadRequest, "user_id and assignment id are required")
		return
	}
	if err := h.assignments.MarkCompleted(r.Context(), userID, id, h.now()); err != nil {
		respondInternalError(w, "complete assignment", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(assignment.StatusCompleted)})
}

type planResponse struct {
	Items       []planner.Item          `json:"items"`
	Assignments []assignment.Assignment `json:"assignments"`
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	active, err := h.assignments.FindActiveByUser(r.Context(), userID)
	if err != nil {
		respondInternalError(w, "load assignments", err)
		return
	}

	today := h.today()
	horizon := today.AddDays(h.cfg.Coach.PlanHorizonDays)
	relevant := make([]assignment.Assignment, 0, len(active))
	for _, a := range active {
		due, err := dates.Parse(a.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !due.After(horizon.Time) {
			relevant = append(relevant, a)
		}
	}

	items, err := planner.Rank(relevant, today)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, planResponse{Items: items, Assignments: relevant})
}

type sessionCommandRequest struct {
	UserID            string `json:"user_id"`
	Subject           string `json:"subject,omitempty"`
	DurationMinutes   int    `json:"duration_minutes,omitempty"`
	AdditionalMinutes int    `json:"additional_minutes,omitempty"`
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req sessionCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.DurationMinutes < 0 {
		respondError(w, http.StatusBadRequest, "duration_minutes must be positive")
		return
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = h.cfg.Coach.PomodoroMinutes
	}

	session := h.manager.Start(req.Subject, req.DurationMinutes)
	if err := h.sessions.Save(r.Context(), req.UserID, session); err != nil {
		respondInternalError(w, "save session", err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// withSession loads the user's active session, applies transform, and saves
// the result.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, transform func(focus.Session) (focus.Session, error)) {
	var req sessionCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	session, err := h.sessions.Get(r.Context(), req.UserID)
	if err != nil {
		respondInternalError(w, "load session", err)
		return
	}
	if session == nil {
		respondError(w, http.StatusNotFound, "no active focus session")
		return
	}

	updated, err := transform(*session)
	if errors.Is(err, focus.ErrInconsistentSession) {
		respondInternalError(w, "apply session command", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sessions.Save(r.Context(), req.UserID, updated); err != nil {
		respondInternalError(w, "save session", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session focus.Session) (focus.Session, error) {
		return h.manager.Pause(session), nil
	})
}

func (h *Handler) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.manager.Resume)
}

func (h *Handler) handleExtendSession(w http.ResponseWriter, r *http.Request) {
	var req sessionCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.AdditionalMinutes <= 0 {
		respondError(w, http.StatusBadRequest, "additional_minutes must be positive")
		return
	}

	session, err := h.sessions.Get(r.Context(), req.UserID)
	if err != nil {
		respondInternalError(w, "load session", err)
		return
	}
	if session == nil {
		respondError(w, http.StatusNotFound, "no active focus session")
		return
	}

	updated := h.manager.Extend(*session, req.AdditionalMinutes)
	if err := h.sessions.Save(r.Context(), req.UserID, updated); err != nil {
		respondInternalError(w, "save session", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

type sessionStatusResponse struct {
	Session          focus.Session `json:"session"`
	RemainingMinutes int           `json:"remaining_minutes"`
}

func (h *Handler) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	session, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		respondInternalError(w, "load session", err)
		return
	}
	if session == nil {
		respondError(w, http.StatusNotFound, "no active focus session")
		return
	}

	remaining, err := h.manager.RemainingMinutes(*session)
	if err != nil {
		respondInternalError(w, "compute remaining minutes", err)
		return
	}
	respondJSON(w, http.StatusOK, sessionStatusResponse{
		Session:          *session,
		RemainingMinutes: remaining,
	})
}

func (h *Handler) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	var req sessionCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	session, err := h.sessions.Get(r.Context(), req.UserID)
	if err != nil {
		respondInternalError(w, "load session", err)
		return
	}
	if session == nil {
		respondError(w, http.StatusNotFound, "no active focus session")
		return
	}

	record := focus.Record{
		UserID:          req.UserID,
		Kind:            focus.KindPomodoro,
		Subject:         session.Subject,
		DurationMinutes: session.DurationMinutes,
		Interruptions:   session.Interruptions,
		RecordedAt:      h.now(),
	}
	if err := h.records.Create(r.Context(), &record); err != nil {
		respondInternalError(w, "record finished session", err)
		return
	}
	if err := h.sessions.Clear(r.Context(), req.UserID); err != nil {
		respondInternalError(w, "clear session", err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

type answerReviewRequest struct {
	UserID string        `json:"user_id"`
	ItemID string        `json:"item_id"`
	Result review.Result `json:"result"`
}

func (h *Handler) handleAnswerReview(w http.ResponseWriter, r *http.Request) {
	var req answerReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "user_id and item_id are required")
		return
	}
	switch req.Result {
	case review.ResultPass, review.ResultFail, review.ResultPartial:
	default:
		respondError(w, http.StatusBadRequest, "result must be one of pass, fail, partial")
		return
	}

	today := h.today()
	state, err := h.reviews.Get(r.Context(), req.UserID, req.ItemID)
	if err != nil {
		respondInternalError(w, "load review state", err)
		return
	}
	if state == nil {
		seeded := review.NewState(req.UserID, req.ItemID, today)
		state = &seeded
	}

	updated := review.Advance(*state, req.Result, today)
	if err := h.reviews.Save(r.Context(), updated); err != nil {
		respondInternalError(w, "save review state", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

type dueReviewsResponse struct {
	ItemIDs []string `json:"item_ids"`
}

func (h *Handler) handleDueReviews(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	states, err := h.reviews.FindByUser(r.Context(), userID)
	if err != nil {
		respondInternalError(w, "load review states", err)
		return
	}
	respondJSON(w, http.StatusOK, dueReviewsResponse{
		ItemIDs: review.DueForReview(states, h.today()),
	})
}

type recapResponse struct {
	Recap    recap.Recap          `json:"recap"`
	Rollover []recap.RolloverItem `json:"rollover"`
}

func (h *Handler) handleRecap(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	today := h.today()
	records, err := h.records.FindByUserAndDay(r.Context(), userID, today)
	if err != nil {
		respondInternalError(w, "load study records", err)
		return
	}
	completed, err := h.assignments.FindCompletedOn(r.Context(), userID, today)
	if err != nil {
		respondInternalError(w, "load completed assignments", err)
		return
	}
	incomplete, err := h.assignments.FindActiveByUser(r.Context(), userID)
	if err != nil {
		respondInternalError(w, "load incomplete assignments", err)
		return
	}

	rollover, err := recap.Rollover(incomplete, today)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, recapResponse{
		Recap:    recap.Build(records, completed, incomplete),
		Rollover: rollover,
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func respondInternalError(w http.ResponseWriter, operation string, err error) {
	slog.Error("command failed", "operation", operation, "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}
