package model

// InstanceListFallbackMessage is returned alongside any listing error.
const InstanceListFallbackMessage = "Failed to list database instances."

// InstanceRecord is a database instance as returned by the workspace API,
// flattened to plain key/value pairs. Its contents are passed through as-is.
type InstanceRecord map[string]any

// InstanceListResult is the outcome of a database instance listing.
// Both variants are delivered with a success status; callers tell them
// apart by payload shape.
type InstanceListResult interface {
	instanceListResult()
}

// InstanceListSuccess carries the listed records.
type InstanceListSuccess struct {
	Data []InstanceRecord `json:"data"`
}

// InstanceListFailure reports a listing that could not be completed.
type InstanceListFailure struct {
	Error           string `json:"error"`
	FallbackMessage string `json:"fallback_message"`
}

func (InstanceListSuccess) instanceListResult() {}
func (InstanceListFailure) instanceListResult() {}

// NewInstanceListSuccess wraps records, never producing a null data array.
func NewInstanceListSuccess(records []InstanceRecord) InstanceListSuccess {
	if records == nil {
		records = []InstanceRecord{}
	}
	return InstanceListSuccess{Data: records}
}

// NewInstanceListFailure builds the failure variant from err.
func NewInstanceListFailure(err error) InstanceListFailure {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return InstanceListFailure{
		Error:           msg,
		FallbackMessage: InstanceListFallbackMessage,
	}
}

// Truncate returns at most limit records. A non-positive limit yields none.
func Truncate(records []InstanceRecord, limit int) []InstanceRecord {
	if limit <= 0 {
		return []InstanceRecord{}
	}
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
