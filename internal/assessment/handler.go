package assessment

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/edusync-gateway/internal/models"
	"github.com/ayush/edusync-gateway/internal/render"
)

// AssessmentService is the part of the backend client the assessment and
// result handlers need.
type AssessmentService interface {
	CreateAssessment(ctx context.Context, a models.Assessment) (*models.Assessment, error)
	GetAllAssessments(ctx context.Context) ([]models.Assessment, error)
	GetAssessmentByID(ctx context.Context, id string) (*models.Assessment, error)
	DeleteAssessment(ctx context.Context, id string) error
	UpdateAssessment(ctx context.Context, a models.Assessment) (*models.Assessment, error)

	SubmitAssessment(ctx context.Context, s models.Submission) (*models.Result, error)
	GetAllResults(ctx context.Context) ([]models.Result, error)
	GetCompletedAssessments(ctx context.Context, studentID string) ([]models.Result, error)
	GetStudentAverageScore(ctx context.Context, studentID string) (float64, error)
}

// Handler holds assessment and result HTTP handlers.
type Handler struct {
	svc AssessmentService
}

func NewHandler(svc AssessmentService) *Handler {
	return &Handler{svc: svc}
}

// List returns every assessment.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetAllAssessments(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}
	if list == nil {
		list = []models.Assessment{}
	}
	render.JSON(w, http.StatusOK, list)
}

// Get returns one assessment.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAssessmentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, a)
}

// Create passes a new assessment through to the backend.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var a models.Assessment
	if err := render.Decode(r, &a); err != nil {
		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := h.svc.CreateAssessment(r.Context(), a)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusCreated, saved)
}

// Update replaces the assessment named in the path.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var a models.Assessment
	if err := render.Decode(r, &a); err != nil {
		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.AssessmentID = chi.URLParam(r, "id")

	saved, err := h.svc.UpdateAssessment(r.Context(), a)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, saved)
}

// Delete removes an assessment.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAssessment(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// Submit records a finished attempt.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var s models.Submission
	if err := render.Decode(r, &s); err != nil {
		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.AssessmentID = strings.TrimSpace(s.AssessmentID)
	s.UserID = strings.TrimSpace(s.UserID)
	if s.AssessmentID == "" || s.UserID == "" {
		render.Message(w, http.StatusBadRequest, "assessmentId and userId are required")
		return
	}

	result, err := h.svc.SubmitAssessment(r.Context(), s)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusCreated, result)
}

// Results returns every recorded result.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetAllResults(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}
	writeResults(w, list)
}

// Completed returns one student's results.
func (h *Handler) Completed(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetCompletedAssessments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err)
		return
	}
	writeResults(w, list)
}

func writeResults(w http.ResponseWriter, list []models.Result) {
	if list == nil {
		list = []models.Result{}
	}
	render.JSON(w, http.StatusOK, list)
}

// Average returns a student's average score.
func (h *Handler) Average(w http.ResponseWriter, r *http.Request) {
	avg, err := h.svc.GetStudentAverageScore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]float64{"averageScore": avg})
}
