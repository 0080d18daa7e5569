package models

import "time"

// TelemetryEvent wraps an opaque client payload with a server-assigned
// receive time. The server never interprets the payload beyond pulling an
// event name out for logging.
type TelemetryEvent struct {
	Payload    map[string]any `json:"payload"`
	ReceivedAt time.Time      `json:"received_at"`
}
