package model

import "time"

// MetricsRecorder records application metrics.
type MetricsRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordAuthEvent(event string)
	RecordMediaUpload(kind MediaKind, result string)
}
