package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ayush/edusync-gateway/internal/models"
)

const coursesPath = "/api/CourseModels"

// UploadCourse calls POST /api/CourseModels with the PascalCase body.
func (c *Client) UploadCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	var created models.Course
	err := c.do(ctx, call{
		op:     "uploadCourse",
		method: http.MethodPost,
		path:   coursesPath,
		body:   models.ToCourseWire(course),
	}, &created)
	if err != nil {
		c.logFailure("upload course", err)
		return nil, err
	}
	return &created, nil
}

// UpdateCourse calls PUT /api/CourseModels/{courseId} with the same body
// shape as UploadCourse.
func (c *Client) UpdateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	const op = "updateCourse"
	if err := requireID(op, "courseId", course.CourseID); err != nil {
		return nil, err
	}
	var updated models.Course
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodPut,
		path:   pathID(coursesPath, course.CourseID),
		body:   models.ToCourseWire(course),
	}, &updated)
	if err != nil {
		c.logFailure("update course", err)
		return nil, err
	}
	return &updated, nil
}

// GetCoursesByInstructor calls GET /api/CourseModels?instructorId=...
func (c *Client) GetCoursesByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	const op = "getCoursesByInstructor"
	if err := requireID(op, "instructorId", instructorID); err != nil {
		return nil, err
	}
	var courses []models.Course
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		path:   coursesPath,
		query:  url.Values{"instructorId": {instructorID}},
	}, &courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// GetAllCourses calls GET /api/CourseModels.
func (c *Client) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.do(ctx, call{op: "getAllCourses", method: http.MethodGet, path: coursesPath}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// DeleteCourse calls DELETE /api/CourseModels/{courseId}.
func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	const op = "deleteCourse"
	if err := requireID(op, "courseId", courseID); err != nil {
		return err
	}
	return c.do(ctx, call{op: op, method: http.MethodDelete, path: pathID(coursesPath, courseID)}, nil)
}

// GetEnrolledCourses calls GET /api/CourseModels/enrolled/{studentId}.
func (c *Client) GetEnrolledCourses(ctx context.Context, studentID string) ([]models.Course, error) {
	const op = "getEnrolledCourses"
	if err := requireID(op, "studentId", studentID); err != nil {
		return nil, err
	}
	var courses []models.Course
	if err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathID(coursesPath+"/enrolled", studentID)}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
