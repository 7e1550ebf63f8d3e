package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ayush/edusync-gateway/internal/models"
)

var (
	submissionWireKeys = []string{"answers", "assessmentId", "maxScore", "score", "submissionDate", "userId"}
	answerWireKeys     = []string{"isCorrect", "points", "questionNumber", "questionText", "selectedAnswer"}
)

func TestSubmissionPayloadIsCanonical(t *testing.T) {
	backend := &fakeBackend{status: http.StatusCreated, body: `{"resultId":"r-1","assessmentId":"a-1","userId":"u-1","score":1,"maxScore":2}`}
	c := newTestClient(t, backend)

	submittedAt := time.Date(2026, 2, 14, 9, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	result, err := c.SubmitAssessment(context.Background(), models.Submission{
		AssessmentID: "a-1",
		UserID:       "u-1",
		Score:        1,
		MaxScore:     2,
		SubmittedAt:  submittedAt,
		Answers: []models.AnswerRecord{
			{QuestionNumber: 1, QuestionText: "2+2?", SelectedAnswer: "4", Points: 1, IsCorrect: true},
			{QuestionNumber: 2, QuestionText: "Capital of France?", SelectedAnswer: "Rome", Points: 0, IsCorrect: false},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.ResultID != "r-1" {
		t.Fatalf("expected result echo, got %+v", result)
	}

	body := backend.last(t).Body
	if keys := bodyKeys(t, body); strings.Join(keys, ",") != strings.Join(submissionWireKeys, ",") {
		t.Fatalf("expected keys %v, got %v", submissionWireKeys, keys)
	}

	var wire struct {
		SubmissionDate string            `json:"submissionDate"`
		Answers        []json.RawMessage `json:"answers"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if wire.SubmissionDate != "2026-02-14T03:30:00Z" {
		t.Fatalf("expected UTC submission date, got %s", wire.SubmissionDate)
	}
	if len(wire.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(wire.Answers))
	}
	for _, a := range wire.Answers {
		if keys := bodyKeys(t, a); strings.Join(keys, ",") != strings.Join(answerWireKeys, ",") {
			t.Fatalf("expected answer keys %v, got %v", answerWireKeys, keys)
		}
	}
}

func TestSubmissionDefaults(t *testing.T) {
	backend := &fakeBackend{body: `{}`}
	c := newTestClient(t, backend)

	if _, err := c.SubmitAssessment(context.Background(), models.Submission{AssessmentID: "a-1"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(backend.last(t).Body, &wire); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(wire["answers"]) != "[]" {
		t.Fatalf("expected empty answer list, got %s", wire["answers"])
	}
	if string(wire["submissionDate"]) != `"2026-03-02T10:30:00Z"` {
		t.Fatalf("expected clock time for zero date, got %s", wire["submissionDate"])
	}
}

func TestSubmissionServerFault(t *testing.T) {
	for _, body := range []string{`"DB timeout"`, `DB timeout`} {
		backend := &fakeBackend{status: http.StatusInternalServerError, body: body}
		c := newTestClient(t, backend)

		_, err := c.SubmitAssessment(context.Background(), models.Submission{AssessmentID: "a-1"})
		if !errors.Is(err, ErrServerFault) {
			t.Fatalf("expected server fault, got %v", err)
		}
		if !strings.Contains(err.Error(), "DB timeout") {
			t.Fatalf("expected backend text in error, got %q", err.Error())
		}
		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.Message != "Server Error: DB timeout" {
			t.Fatalf("unexpected message %v", err)
		}
	}
}

func TestSubmissionOtherFailuresPassThrough(t *testing.T) {
	backend := &fakeBackend{status: http.StatusBadRequest, body: `"Assessment already submitted"`}
	c := newTestClient(t, backend)

	_, err := c.SubmitAssessment(context.Background(), models.Submission{AssessmentID: "a-1"})
	if KindOf(err) != KindServerMessage {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestAverageScore(t *testing.T) {
	cases := map[string]float64{
		`87.5`:                   87.5,
		`{"averageScore":72}`:    72,
		`{"AverageScore":64.25}`: 64.25,
		`{"average":10}`:         10,
		``:                       0,
		`null`:                   0,
	}
	for body, want := range cases {
		c := newTestClient(t, &fakeBackend{body: body})
		got, err := c.GetStudentAverageScore(context.Background(), "s-1")
		if err != nil {
			t.Fatalf("body %q: %v", body, err)
		}
		if got != want {
			t.Fatalf("body %q: expected %v, got %v", body, want, got)
		}
	}

	c := newTestClient(t, &fakeBackend{body: `{"score":"n/a"}`})
	if _, err := c.GetStudentAverageScore(context.Background(), "s-1"); KindOf(err) != KindUnclassified || err == nil {
		t.Fatalf("expected unclassified error for unknown payload, got %v", err)
	}
}

func TestResultListings(t *testing.T) {
	backend := &fakeBackend{body: `[{"resultId":"r-1","assessmentId":"a-1","userId":"s-1","score":3,"maxScore":5,"attemptDate":"2026-01-10T08:00:00"}]`}
	c := newTestClient(t, backend)
	ctx := context.Background()

	all, err := c.GetAllResults(ctx)
	if err != nil {
		t.Fatalf("all results: %v", err)
	}
	completed, err := c.GetCompletedAssessments(ctx, "s-1")
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if len(all) != 1 || len(completed) != 1 || completed[0].AttemptDate != "2026-01-10T08:00:00" || completed[0].Score != 3 {
		t.Fatalf("unexpected results %+v / %+v", all, completed)
	}
}
