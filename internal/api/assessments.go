package api

import (
	"context"
	"net/http"

	"github.com/ayush/edusync-gateway/internal/models"
)

const assessmentsPath = "/api/AssessmentModels"

// CreateAssessment calls POST /api/AssessmentModels.
func (c *Client) CreateAssessment(ctx context.Context, a models.Assessment) (*models.Assessment, error) {
	var created models.Assessment
	if err := c.do(ctx, call{op: "createAssessment", method: http.MethodPost, path: assessmentsPath, body: a}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetAllAssessments calls GET /api/AssessmentModels.
func (c *Client) GetAllAssessments(ctx context.Context) ([]models.Assessment, error) {
	var list []models.Assessment
	if err := c.do(ctx, call{op: "getAllAssessments", method: http.MethodGet, path: assessmentsPath}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetAssessmentByID calls GET /api/AssessmentModels/{id}.
func (c *Client) GetAssessmentByID(ctx context.Context, id string) (*models.Assessment, error) {
	const op = "getAssessmentById"
	if err := requireID(op, "assessmentId", id); err != nil {
		return nil, err
	}
	var a models.Assessment
	if err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathID(assessmentsPath, id)}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAssessment calls DELETE /api/AssessmentModels/{id}.
func (c *Client) DeleteAssessment(ctx context.Context, id string) error {
	const op = "deleteAssessment"
	if err := requireID(op, "assessmentId", id); err != nil {
		return err
	}
	return c.do(ctx, call{op: op, method: http.MethodDelete, path: pathID(assessmentsPath, id)}, nil)
}

// UpdateAssessment calls PUT /api/AssessmentModels/{assessmentId}, taking
// the id from a itself.
func (c *Client) UpdateAssessment(ctx context.Context, a models.Assessment) (*models.Assessment, error) {
	const op = "updateAssessment"
	if err := requireID(op, "assessmentId", a.AssessmentID); err != nil {
		return nil, err
	}
	var updated models.Assessment
	if err := c.do(ctx, call{op: op, method: http.MethodPut, path: pathID(assessmentsPath, a.AssessmentID), body: a}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
