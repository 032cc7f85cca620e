package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zfit/zfit/internal/models"
)

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// flexList accepts a JSON list of strings or a single string.
type flexList []string

func (f *flexList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings, got %s", data)
	}
	*f = list
	return nil
}

// programBody is the /generateProgram request. Every field is required.
type programBody struct {
	Age       *flexString `json:"age"`
	Gender    *string     `json:"gender"`
	Level     *string     `json:"level"`
	Goal      *string     `json:"goal"`
	Days      []string    `json:"days"`
	StartDate *string     `json:"startdate"`
	Equipment *flexList   `json:"equipment"`
}

func (b programBody) request() (models.ProgramRequest, error) {
	var missing []string
	if b.Age == nil {
		missing = append(missing, "age")
	}
	if b.Gender == nil {
		missing = append(missing, "gender")
	}
	if b.Level == nil {
		missing = append(missing, "level")
	}
	if b.Goal == nil {
		missing = append(missing, "goal")
	}
	if b.Days == nil {
		missing = append(missing, "days")
	}
	if b.StartDate == nil {
		missing = append(missing, "startdate")
	}
	if b.Equipment == nil {
		missing = append(missing, "equipment")
	}
	if len(missing) > 0 {
		return models.ProgramRequest{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	start, _, _ := strings.Cut(*b.StartDate, "T")
	return models.ProgramRequest{
		Age:       string(*b.Age),
		Gender:    *b.Gender,
		Level:     *b.Level,
		Goal:      *b.Goal,
		Days:      b.Days,
		StartDate: start,
		Equipment: []string(*b.Equipment),
	}, nil
}

// decodeUpdate reads the /updateProgram body, a two-element list of the
// current plan and the requested changes.
func decodeUpdate(data []byte) ([]models.StructuredWorkout, string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, "", fmt.Errorf("decoding update body: %w", err)
	}
	if len(parts) < 2 {
		return nil, "", errors.New("update body must be [program, changes]")
	}

	var program []models.StructuredWorkout
	if err := json.Unmarshal(parts[0], &program); err != nil {
		return nil, "", fmt.Errorf("decoding program: %w", err)
	}
	var changes string
	if err := json.Unmarshal(parts[1], &changes); err != nil {
		return nil, "", fmt.Errorf("decoding changes: %w", err)
	}
	return program, changes, nil
}
