package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hasibmuhammad/portal-server/internal/config"
	"github.com/hasibmuhammad/portal-server/internal/middleware"
	"github.com/hasibmuhammad/portal-server/internal/models"
	"github.com/hasibmuhammad/portal-server/internal/repository"
)

// GradedNotifier delivers the optional "your submission was graded"
// email. *utils.Mailer satisfies it; a disabled notifier is skipped.
type GradedNotifier interface {
	Enabled() bool
	SendEmail(to string, subject string, body string) error
}

type SubmissionHandler struct {
	submissions repository.SubmissionRepository
	policy      config.GradingPolicy
	mailer      GradedNotifier
	logger      *zap.Logger
}

func NewSubmissionHandler(submissions repository.SubmissionRepository, policy config.GradingPolicy, mailer GradedNotifier, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, policy: policy, mailer: mailer, logger: logger}
}

// CreateSubmission records a new submission for the caller. Status and
// submitter come from the server, never from the body.
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	email, ok := requireSelf(w, r)
	if !ok {
		return
	}

	var newSubmission models.Submission
	if err := json.NewDecoder(r.Body).Decode(&newSubmission); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(newSubmission); err != nil {
		http.Error(w, "Assignment ID is required", http.StatusBadRequest)
		return
	}

	newSubmission.ID = primitive.NewObjectID()
	newSubmission.SubmittedBy = email
	newSubmission.Status = models.StatusPending
	newSubmission.GivenMark = 0
	newSubmission.Feedback = ""
	newSubmission.GradedBy = ""
	newSubmission.SubmittedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := h.submissions.Insert(ctx, newSubmission)
	if err != nil {
		h.logger.Error("failed to create submission", zap.Error(err))
		http.Error(w, "Failed to create submission", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// PendingSubmissions returns the reviewer queue.
func (h *SubmissionHandler) PendingSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	submissions, err := h.submissions.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		h.logger.Error("failed to fetch pending submissions", zap.Error(err))
		http.Error(w, "Failed to fetch submissions", http.StatusInternalServerError)
		return
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(submissions)
}

// MySubmissions lists the caller's own submissions, filtered on the
// verified identity rather than anything client-supplied.
func (h *SubmissionHandler) MySubmissions(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSelf(w, r); !ok {
		return
	}
	email, _ := middleware.CallerEmail(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	submissions, err := h.submissions.ListBySubmitter(ctx, email)
	if err != nil {
		h.logger.Error("failed to fetch submissions", zap.Error(err))
		http.Error(w, "Failed to fetch submissions", http.StatusInternalServerError)
		return
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(submissions)
}

// GradeSubmission sets mark, feedback and grader, moving the
// submission to graded. Re-grading and mark range are policy-gated.
func (h *SubmissionHandler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	grader, ok := requireSelf(w, r)
	if !ok {
		return
	}

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		GivenMark int    `json:"given_mark"`
		Feedback  string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if h.policy.MaxMark > 0 && (payload.GivenMark < 0 || payload.GivenMark > h.policy.MaxMark) {
		http.Error(w, fmt.Sprintf("Given mark must be between 0 and %d", h.policy.MaxMark), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	submission, err := h.submissions.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Submission not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch submission", zap.Error(err))
		http.Error(w, "Failed to fetch submission", http.StatusInternalServerError)
		return
	}
	if !h.policy.AllowRegrade && submission.Status == models.StatusGraded {
		http.Error(w, "Submission is already graded", http.StatusConflict)
		return
	}

	grade := models.Grade{
		GivenMark: payload.GivenMark,
		Feedback:  payload.Feedback,
		GradedBy:  grader,
	}
	matched, err := h.submissions.Grade(ctx, objID, grade, h.policy.AllowRegrade)
	if err != nil {
		h.logger.Error("failed to grade submission", zap.Error(err))
		http.Error(w, "Failed to grade submission", http.StatusInternalServerError)
		return
	}
	if matched == 0 {
		// The submission existed a moment ago, so a zero match under
		// the no-regrade filter means another grade landed first.
		if !h.policy.AllowRegrade {
			http.Error(w, "Submission is already graded", http.StatusConflict)
			return
		}
		http.Error(w, "Submission not found", http.StatusNotFound)
		return
	}

	if h.mailer != nil && h.mailer.Enabled() {
		go h.notifyGraded(submission.SubmittedBy, submission.Title, grade)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"matchedCount": matched,
	})
}

func (h *SubmissionHandler) notifyGraded(to string, title string, grade models.Grade) {
	body := fmt.Sprintf(`
	<html>
	<body>
		<p>Hi,</p>
		<p>Your submission%s has been graded.</p>
		<p>Mark: <strong>%d</strong></p>
		<p>Feedback: %s</p>
	</body>
	</html>`, submissionTitleFragment(title), grade.GivenMark, grade.Feedback)

	if err := h.mailer.SendEmail(to, "Your submission has been graded", body); err != nil {
		h.logger.Warn("graded notification not delivered", zap.String("to", to))
	}
}

func submissionTitleFragment(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf(" for %q", title)
}
