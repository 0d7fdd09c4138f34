package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// Decode turns a tracker response body into a summary. Three shapes are
// accepted: a stats object with a "today" summary, a bare summary object,
// and a list of raw usage records (bare or under "records").
func Decode(body []byte) (domain.ActivitySummary, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return domain.ActivitySummary{}, fmt.Errorf("%w: empty body", ErrBadPayload)
	}

	if trimmed[0] == '[' {
		return decodeRecords(trimmed)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if today, ok := probe["today"]; ok {
		return decodeSummary(today)
	}
	if records, ok := probe["records"]; ok {
		return decodeRecords(records)
	}
	if !hasSummaryField(probe) {
		return domain.ActivitySummary{}, fmt.Errorf("%w: no summary fields", ErrBadPayload)
	}
	return decodeSummary(trimmed)
}

func decodeSummary(data []byte) (domain.ActivitySummary, error) {
	var s domain.ActivitySummary
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if s.Categories == nil {
		s.Categories = domain.CategoryBucket{}
	}
	return s, nil
}

func decodeRecords(data []byte) (domain.ActivitySummary, error) {
	var records []domain.UsageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	s := activity.Summarize(records)
	for _, r := range records {
		if r.Timestamp.After(s.UpdatedAt) {
			s.UpdatedAt = r.Timestamp
		}
	}
	return s, nil
}

var summaryFields = []string{
	"study_minutes", "entertainment_minutes", "others_minutes", "work_minutes",
	"social_minutes", "productivity_minutes", "gaming_minutes", "total_minutes",
}

func hasSummaryField(obj map[string]json.RawMessage) bool {
	for _, f := range summaryFields {
		if _, ok := obj[f]; ok {
			return true
		}
	}
	return false
}
