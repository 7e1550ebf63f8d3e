package course

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/edusync-gateway/internal/api"
	"github.com/ayush/edusync-gateway/internal/models"
)

type fakeCourses struct {
	uploaded     []models.Course
	updated      []models.Course
	deleted      []string
	byInstructor string
	enrolledFor  string
	list         []models.Course
	err          error
}

func (f *fakeCourses) UploadCourse(ctx context.Context, c models.Course) (*models.Course, error) {
	f.uploaded = append(f.uploaded, c)
	if f.err != nil {
		return nil, f.err
	}
	return &c, nil
}

func (f *fakeCourses) UpdateCourse(ctx context.Context, c models.Course) (*models.Course, error) {
	f.updated = append(f.updated, c)
	if f.err != nil {
		return nil, f.err
	}
	return &c, nil
}

func (f *fakeCourses) GetCoursesByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	f.byInstructor = instructorID
	return f.list, f.err
}

func (f *fakeCourses) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return f.list, f.err
}

func (f *fakeCourses) DeleteCourse(ctx context.Context, courseID string) error {
	f.deleted = append(f.deleted, courseID)
	return f.err
}

func (f *fakeCourses) GetEnrolledCourses(ctx context.Context, studentID string) ([]models.Course, error) {
	f.enrolledFor = studentID
	return f.list, f.err
}

type fakeMedia struct {
	key         string
	data        []byte
	contentType string
	err         error
}

func (f *fakeMedia) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.key, f.data, f.contentType = key, data, contentType
	return f.err
}

func (f *fakeMedia) URL(key string) string { return "http://media.test/course-media/" + key }

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/courses", h.List)
	r.Post("/api/courses", h.Create)
	r.Post("/api/courses/media", h.UploadMedia)
	r.Put("/api/courses/{id}", h.Update)
	r.Delete("/api/courses/{id}", h.Delete)
	r.Get("/api/students/{id}/courses", h.Enrolled)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateGeneratesCourseID(t *testing.T) {
	courses := &fakeCourses{}
	h := NewHandler(courses, nil)
	h.newID = func() string { return "c-new" }

	rec := serve(newRouter(h), http.MethodPost, "/api/courses", `{"title":" Go 101 ","description":"basics","instructorId":"i-1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	want := models.Course{CourseID: "c-new", Title: "Go 101", Description: "basics", InstructorID: "i-1"}
	if len(courses.uploaded) != 1 || courses.uploaded[0] != want {
		t.Fatalf("unexpected upload %+v", courses.uploaded)
	}

	rec = serve(newRouter(h), http.MethodPost, "/api/courses", `{"courseId":"c-7","title":"Go","instructorId":"i-1"}`)
	if rec.Code != http.StatusCreated || courses.uploaded[1].CourseID != "c-7" {
		t.Fatalf("expected caller id to be kept, got %+v", courses.uploaded[1])
	}
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{"title":`},
		{"no title", `{"instructorId":"i-1"}`},
		{"no instructor", `{"title":"Go"}`},
	}
	for _, tc := range cases {
		courses := &fakeCourses{}
		rec := serve(newRouter(NewHandler(courses, nil)), http.MethodPost, "/api/courses", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
		if len(courses.uploaded) != 0 {
			t.Fatalf("%s: expected no backend call", tc.name)
		}
	}
}

func TestUpdateUsesPathID(t *testing.T) {
	courses := &fakeCourses{}
	rec := serve(newRouter(NewHandler(courses, nil)), http.MethodPut, "/api/courses/c-1", `{"courseId":"other","title":"Go","instructorId":"i-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if courses.updated[0].CourseID != "c-1" {
		t.Fatalf("expected path id, got %q", courses.updated[0].CourseID)
	}
}

func TestListAndEnrolled(t *testing.T) {
	courses := &fakeCourses{}
	router := newRouter(NewHandler(courses, nil))

	rec := serve(router, http.MethodGet, "/api/courses", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %d %s", rec.Code, rec.Body.String())
	}

	courses.list = []models.Course{{CourseID: "c-1", Title: "Go", InstructorID: "i-9"}}
	rec = serve(router, http.MethodGet, "/api/courses?instructorId=i-9", "")
	if courses.byInstructor != "i-9" {
		t.Fatalf("expected instructor lookup, got %q", courses.byInstructor)
	}
	var got []models.Course
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || len(got) != 1 {
		t.Fatalf("unexpected listing %s", rec.Body.String())
	}

	serve(router, http.MethodGet, "/api/students/s-3/courses", "")
	if courses.enrolledFor != "s-3" {
		t.Fatalf("expected enrolled lookup for s-3, got %q", courses.enrolledFor)
	}
}

func TestDeleteAndBackendErrors(t *testing.T) {
	courses := &fakeCourses{}
	router := newRouter(NewHandler(courses, nil))

	rec := serve(router, http.MethodDelete, "/api/courses/c-1", "")
	if rec.Code != http.StatusOK || len(courses.deleted) != 1 || courses.deleted[0] != "c-1" {
		t.Fatalf("unexpected delete %d %v", rec.Code, courses.deleted)
	}

	courses.err = &api.Error{Op: "deleteCourse", Kind: api.KindNetworkUnavailable, Message: "server unreachable", Err: errors.New("dial tcp")}
	rec = serve(router, http.MethodDelete, "/api/courses/c-1", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadMedia(t *testing.T) {
	media := &fakeMedia{}
	h := NewHandler(&fakeCourses{}, media)
	h.newID = func() string { return "m-1" }

	body, ct := multipartBody(t, "Intro.PNG", []byte("\x89PNG\r\n\x1a\nrest"))
	req := httptest.NewRequest(http.MethodPost, "/api/courses/media", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if media.key != "courses/m-1.png" {
		t.Fatalf("unexpected key %q", media.key)
	}
	if media.contentType != "image/png" {
		t.Fatalf("expected detected content type, got %q", media.contentType)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["mediaUrl"] != "http://media.test/course-media/courses/m-1.png" {
		t.Fatalf("unexpected mediaUrl %q", got["mediaUrl"])
	}
}

func TestUploadMediaFailures(t *testing.T) {
	rec := serve(newRouter(NewHandler(&fakeCourses{}, nil)), http.MethodPost, "/api/courses/media", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without storage, got %d", rec.Code)
	}

	rec = serve(newRouter(NewHandler(&fakeCourses{}, &fakeMedia{})), http.MethodPost, "/api/courses/media", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a file, got %d", rec.Code)
	}

	media := &fakeMedia{err: errors.New("minio down")}
	body, ct := multipartBody(t, "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/courses/media", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	newRouter(NewHandler(&fakeCourses{}, media)).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on storage failure, got %d", rec.Code)
	}
}
