package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

const assessmentIDKey = "assessmentId"

// Assessment is an assessment record. Only the id is interpreted here; the
// question/answer schema belongs to the backend and is carried in Fields
// exactly as received.
type Assessment struct {
	AssessmentID string
	Fields       map[string]json.RawMessage
}

func (a Assessment) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(a.Fields)+1)
	for k, v := range a.Fields {
		out[k] = v
	}
	// A new assessment may leave the id to the backend.
	if a.AssessmentID != "" {
		id, err := json.Marshal(a.AssessmentID)
		if err != nil {
			return nil, err
		}
		out[assessmentIDKey] = id
	}
	return json.Marshal(out)
}

func (a *Assessment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.AssessmentID = ""
	a.Fields = nil
	for k, v := range raw {
		// The backend may answer in either casing.
		if strings.EqualFold(k, assessmentIDKey) {
			if err := json.Unmarshal(v, &a.AssessmentID); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			continue
		}
		if a.Fields == nil {
			a.Fields = make(map[string]json.RawMessage, len(raw))
		}
		a.Fields[k] = v
	}
	return nil
}
