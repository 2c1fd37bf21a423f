package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hasibmuhammad/portal-server/internal/models"
	"github.com/hasibmuhammad/portal-server/internal/repository"
)

const featuredCount = 3

type AssignmentHandler struct {
	assignments repository.AssignmentRepository
	logger      *zap.Logger
}

func NewAssignmentHandler(assignments repository.AssignmentRepository, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, logger: logger}
}

// GetAssignments returns the full public catalog.
func (h *AssignmentHandler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	assignments, err := h.assignments.ListAll(ctx)
	if err != nil {
		h.logger.Error("failed to fetch assignments", zap.Error(err))
		http.Error(w, "Failed to fetch assignments", http.StatusInternalServerError)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignments)
}

// BrowseAssignments filters by difficulty and paginates. page is the
// zero-based page index; size is the page size.
func (h *AssignmentHandler) BrowseAssignments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := int64(0)
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid page parameter", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	size := int64(10)
	if raw := query.Get("size"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid size parameter", http.StatusBadRequest)
			return
		}
		size = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	assignments, err := h.assignments.Browse(ctx, repository.BrowseOptions{
		Difficulty: query.Get("difficulty"),
		Skip:       page * size,
		Limit:      size,
	})
	if err != nil {
		h.logger.Error("failed to browse assignments", zap.Error(err))
		http.Error(w, "Failed to fetch assignments", http.StatusInternalServerError)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignments)
}

// FeaturedAssignments returns the newest few for the landing page.
func (h *AssignmentHandler) FeaturedAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	assignments, err := h.assignments.Featured(ctx, featuredCount)
	if err != nil {
		h.logger.Error("failed to fetch featured assignments", zap.Error(err))
		http.Error(w, "Failed to fetch assignments", http.StatusInternalServerError)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignments)
}

// GetAssignmentByID returns a single assignment, with an explicit
// success flag so absence is distinguishable without an error shape.
func (h *AssignmentHandler) GetAssignmentByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSelf(w, r); !ok {
		return
	}

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid assignment ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	assignment, err := h.assignments.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "Assignment not found",
			})
			return
		}
		h.logger.Error("failed to fetch assignment", zap.Error(err))
		http.Error(w, "Failed to fetch assignment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    true,
		"assignment": assignment,
	})
}

// CreateAssignment inserts a new assignment owned by the caller.
func (h *AssignmentHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	email, ok := requireSelf(w, r)
	if !ok {
		return
	}

	var newAssignment models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&newAssignment); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(newAssignment); err != nil {
		http.Error(w, "Title is required and marks must not be negative", http.StatusBadRequest)
		return
	}

	newAssignment.ID = primitive.NewObjectID()
	newAssignment.CreatedBy = email
	newAssignment.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := h.assignments.Insert(ctx, newAssignment)
	if err != nil {
		h.logger.Error("failed to create assignment", zap.Error(err))
		http.Error(w, "Failed to create assignment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateAssignment replaces every assignment field under the given id,
// upserting when the id does not exist.
func (h *AssignmentHandler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSelf(w, r); !ok {
		return
	}

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid assignment ID", http.StatusBadRequest)
		return
	}

	var updated models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(updated); err != nil {
		http.Error(w, "Title is required and marks must not be negative", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.assignments.Replace(ctx, objID, updated)
	if err != nil {
		h.logger.Error("failed to update assignment", zap.Error(err))
		http.Error(w, "Failed to update assignment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// DeleteAssignment removes an assignment. A missing id is reported as
// a zero deletedCount, not an error.
func (h *AssignmentHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSelf(w, r); !ok {
		return
	}

	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid assignment ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.assignments.Delete(ctx, objID)
	if err != nil {
		h.logger.Error("failed to delete assignment", zap.Error(err))
		http.Error(w, "Failed to delete assignment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"deletedCount": deleted})
}
