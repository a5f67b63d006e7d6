package model

import "time"

// Shared defaults used by both the server and CLI binaries.
const (
	DefaultEndpoint        = "http://localhost:8080/rate/effZins"
	DefaultNotificationTTL = 10 * time.Second
	DefaultSkin            = "default"
	DefaultHistoryLimit    = 20
	MaxHistoryLimit        = 500
)
