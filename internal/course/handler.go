package course

import (
	"context"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayush/edusync-gateway/internal/models"
	"github.com/ayush/edusync-gateway/internal/render"
)

// maxMediaSize caps a single media upload.
const maxMediaSize = 64 << 20

// CourseService is the part of the backend client the course handlers need.
type CourseService interface {
	UploadCourse(ctx context.Context, c models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, c models.Course) (*models.Course, error)
	GetCoursesByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
	GetEnrolledCourses(ctx context.Context, studentID string) ([]models.Course, error)
}

// FileStore defines the interface for media storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	URL(key string) string
}

// Handler holds course HTTP handlers. media may be nil when no object store
// is configured.
type Handler struct {
	courses CourseService
	media   FileStore
	newID   func() string
}

func NewHandler(courses CourseService, media FileStore) *Handler {
	return &Handler{courses: courses, media: media, newID: func() string { return uuid.New().String() }}
}

// List returns every course, or one instructor's courses when instructorId
// is given.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Course
		err  error
	)
	if instructorID := r.URL.Query().Get("instructorId"); instructorID != "" {
		list, err = h.courses.GetCoursesByInstructor(r.Context(), instructorID)
	} else {
		list, err = h.courses.GetAllCourses(r.Context())
	}
	if err != nil {
		render.Error(w, err)
		return
	}
	writeCourses(w, list)
}

// Enrolled returns the courses a student is enrolled in.
func (h *Handler) Enrolled(w http.ResponseWriter, r *http.Request) {
	list, err := h.courses.GetEnrolledCourses(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err)
		return
	}
	writeCourses(w, list)
}

func writeCourses(w http.ResponseWriter, list []models.Course) {
	if list == nil {
		list = []models.Course{}
	}
	render.JSON(w, http.StatusOK, list)
}

// Create uploads a new course.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Course
	if err := render.Decode(r, &c); err != nil {
		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validCourse(w, &c) {
		return
	}
	if c.CourseID == "" {
		c.CourseID = h.newID()
	}

	saved, err := h.courses.UploadCourse(r.Context(), c)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusCreated, saved)
}

// Update replaces the course named in the path.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var c models.Course
	if err := render.Decode(r, &c); err != nil {
		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validCourse(w, &c) {
		return
	}
	c.CourseID = chi.URLParam(r, "id")

	saved, err := h.courses.UpdateCourse(r.Context(), c)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, saved)
}

func validCourse(w http.ResponseWriter, c *models.Course) bool {
	c.Title = strings.TrimSpace(c.Title)
	c.InstructorID = strings.TrimSpace(c.InstructorID)
	if c.Title == "" || c.InstructorID == "" {
		render.Message(w, http.StatusBadRequest, "title and instructorId are required")
		return false
	}
	return true
}

// Delete removes a course.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.courses.DeleteCourse(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// UploadMedia stores the multipart "file" field and returns the URL to put in
// the course's mediaUrl.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		render.Message(w, http.StatusServiceUnavailable, "media storage not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMediaSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		render.Message(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		render.Message(w, http.StatusBadRequest, "could not read file")
		return
	}
	if len(data) == 0 {
		render.Message(w, http.StatusBadRequest, "file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	key := "courses/" + h.newID() + strings.ToLower(filepath.Ext(header.Filename))

	if err := h.media.Upload(r.Context(), key, data, contentType); err != nil {
		log.Printf("media upload error: %v", err)
		render.Message(w, http.StatusBadGateway, "media upload failed")
		return
	}
	render.JSON(w, http.StatusCreated, map[string]string{"mediaUrl": h.media.URL(key)})
}
