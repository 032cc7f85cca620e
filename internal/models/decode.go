package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Plans come back from the text generator with loosely typed values
// ("set_num": 1.0, "lbs": "135", "musclegroups": "chest"). Decoding coerces
// them instead of rejecting the plan. Values that cannot be coerced decode
// to their zero value.

// UnmarshalJSON decodes a workout object with loosely typed fields.
func (w *StructuredWorkout) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title        json.RawMessage `json:"title"`
		Date         json.RawMessage `json:"date"`
		MuscleGroups json.RawMessage `json:"musclegroups"`
		Sets         json.RawMessage `json:"sets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	sets := []PlannedSet{}
	for _, item := range objects(raw.Sets) {
		var s PlannedSet
		if err := json.Unmarshal(item, &s); err != nil {
			return err
		}
		sets = append(sets, s)
	}

	*w = StructuredWorkout{
		Title:        looseString(raw.Title),
		Date:         looseString(raw.Date),
		MuscleGroups: looseStrings(raw.MuscleGroups),
		Sets:         sets,
	}
	return nil
}

// UnmarshalJSON decodes a set object with loosely typed fields.
func (s *PlannedSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Exercise json.RawMessage `json:"exercise"`
		SetNum   json.RawMessage `json:"set_num"`
		Lbs      json.RawMessage `json:"lbs"`
		Reps     json.RawMessage `json:"reps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = PlannedSet{
		Exercise: looseString(raw.Exercise),
		SetNum:   int(math.Round(looseFloat(raw.SetNum))),
		Lbs:      looseFloat(raw.Lbs),
		Reps:     looseFloat(raw.Reps),
	}
	return nil
}

// ObjectElements returns the object members of a JSON array, skipping
// anything else. It fails only when data is not a JSON array.
func ObjectElements(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return objects(data), nil
}

func objects(data json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return nil
	}
	out := items[:0]
	for _, item := range items {
		if t := bytes.TrimSpace(item); len(t) > 0 && t[0] == '{' {
			out = append(out, item)
		}
	}
	return out
}

func looseString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

func looseFloat(raw json.RawMessage) float64 {
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return 0
}

func looseStrings(raw json.RawMessage) []string {
	out := []string{}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		for _, item := range items {
			if s := looseString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := looseString(raw); s != "" {
		out = append(out, s)
	}
	return out
}
