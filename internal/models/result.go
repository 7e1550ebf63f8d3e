package models

import "time"

// Submission is a finished attempt as the quiz page builds it.
type Submission struct {
	AssessmentID string         `json:"assessmentId"`
	UserID       string         `json:"userId"`
	Score        int            `json:"score"`
	MaxScore     int            `json:"maxScore"`
	SubmittedAt  time.Time      `json:"submittedAt"`
	Answers      []AnswerRecord `json:"answers"`
}

// AnswerRecord is one answered question inside a Submission.
type AnswerRecord struct {
	QuestionNumber int    `json:"questionNumber"`
	QuestionText   string `json:"questionText"`
	SelectedAnswer string `json:"selectedAnswer"`
	Points         int    `json:"points"`
	IsCorrect      bool   `json:"isCorrect"`
}

// ResultSubmissionWire is the only body shape POST /api/ResultModels accepts.
type ResultSubmissionWire struct {
	AssessmentID   string       `json:"assessmentId"`
	UserID         string       `json:"userId"`
	Score          int          `json:"score"`
	MaxScore       int          `json:"maxScore"`
	SubmissionDate string       `json:"submissionDate"`
	Answers        []AnswerWire `json:"answers"`
}

// AnswerWire is one entry of ResultSubmissionWire.Answers.
type AnswerWire struct {
	QuestionNumber int    `json:"questionNumber"`
	QuestionText   string `json:"questionText"`
	SelectedAnswer string `json:"selectedAnswer"`
	Points         int    `json:"points"`
	IsCorrect      bool   `json:"isCorrect"`
}

// ToResultSubmissionWire maps s field by field. A zero SubmittedAt is
// replaced with now.
func ToResultSubmissionWire(s Submission, now time.Time) ResultSubmissionWire {
	submitted := s.SubmittedAt
	if submitted.IsZero() {
		submitted = now
	}
	answers := make([]AnswerWire, 0, len(s.Answers))
	for _, a := range s.Answers {
		answers = append(answers, AnswerWire{
			QuestionNumber: a.QuestionNumber,
			QuestionText:   a.QuestionText,
			SelectedAnswer: a.SelectedAnswer,
			Points:         a.Points,
			IsCorrect:      a.IsCorrect,
		})
	}
	return ResultSubmissionWire{
		AssessmentID:   s.AssessmentID,
		UserID:         s.UserID,
		Score:          s.Score,
		MaxScore:       s.MaxScore,
		SubmissionDate: submitted.UTC().Format(time.RFC3339),
		Answers:        answers,
	}
}

// Result is a stored result as listed by the ResultModels endpoints.
// Dates stay strings since the backend emits them without a zone.
type Result struct {
	ResultID       string `json:"resultId"`
	AssessmentID   string `json:"assessmentId"`
	UserID         string `json:"userId"`
	Score          int    `json:"score"`
	MaxScore       int    `json:"maxScore"`
	SubmissionDate string `json:"submissionDate,omitempty"`
	AttemptDate    string `json:"attemptDate,omitempty"`
}
