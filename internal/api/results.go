package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ayush/edusync-gateway/internal/models"
)

const resultsPath = "/api/ResultModels"

// SubmitAssessment calls POST /api/ResultModels with s mapped onto
// models.ResultSubmissionWire. A 500 comes back as KindServerFault with the
// backend's text in the message.
func (c *Client) SubmitAssessment(ctx context.Context, s models.Submission) (*models.Result, error) {
	payload := models.ToResultSubmissionWire(s, c.now())
	var result models.Result
	err := c.do(ctx, call{
		op:         "submitAssessment",
		method:     http.MethodPost,
		path:       resultsPath,
		body:       payload,
		faultOn500: true,
	}, &result)
	if err != nil {
		status, body := 0, ""
		var apiErr *Error
		if errors.As(err, &apiErr) {
			status, body = apiErr.Status, apiErr.Body
		}
		submitted, _ := json.Marshal(payload)
		c.logger.Printf("assessment submission failed: err=%v status=%d response=%q submitted=%s", err, status, body, submitted)
		return nil, err
	}
	return &result, nil
}

// GetAllResults calls GET /api/ResultModels.
func (c *Client) GetAllResults(ctx context.Context) ([]models.Result, error) {
	var results []models.Result
	if err := c.do(ctx, call{op: "getAllResults", method: http.MethodGet, path: resultsPath}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetCompletedAssessments calls GET /api/ResultModels/completed/{studentId}.
func (c *Client) GetCompletedAssessments(ctx context.Context, studentID string) ([]models.Result, error) {
	const op = "getCompletedAssessments"
	if err := requireID(op, "studentId", studentID); err != nil {
		return nil, err
	}
	var results []models.Result
	if err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathID(resultsPath+"/completed", studentID)}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetStudentAverageScore calls GET /api/ResultModels/average/{studentId}.
// The backend answers with a bare number or an object carrying it.
func (c *Client) GetStudentAverageScore(ctx context.Context, studentID string) (float64, error) {
	const op = "getStudentAverageScore"
	if err := requireID(op, "studentId", studentID); err != nil {
		return 0, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathID(resultsPath+"/average", studentID)}, &raw); err != nil {
		return 0, err
	}
	avg, err := parseAverage(raw)
	if err != nil {
		return 0, unclassified(op, http.StatusOK, err)
	}
	return avg, nil
}

var averageKeys = []string{"averageScore", "average"}

func parseAverage(raw json.RawMessage) (float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		for _, key := range averageKeys {
			for k, v := range obj {
				if strings.EqualFold(k, key) {
					if err := json.Unmarshal(v, &n); err == nil {
						return n, nil
					}
				}
			}
		}
	}
	return 0, fmt.Errorf("decode average: unexpected payload %s", trimmed)
}
