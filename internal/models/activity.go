package models

// Activity is one audit log entry pushed to the activity backend.
type Activity struct {
	Message string    `json:"message"`
	Object  any       `json:"object"`
	Filter  LogFilter `json:"filter"`
}

// LogFilter carries the indexed fields and the entry timestamp
// (unix nanoseconds, as a string).
type LogFilter struct {
	Timestamp string            `json:"timestamp"`
	Fields    map[string]string `json:"fields"`
}

// TimeSeriesPoint represents a data point in a time series chart.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ActivityQueryParams struct {
	Action string `json:"action" validate:"omitempty,max=64"`
	UserID string `json:"user_id" validate:"omitempty,uuid"`
	Days   int    `json:"days"   validate:"omitempty,oneof=7 30 90"`
}

type ActivityResponse struct {
	Entries []map[string]any  `json:"entries"`
	PerDay  []TimeSeriesPoint `json:"per_day"`
}
