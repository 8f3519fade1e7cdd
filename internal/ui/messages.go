package ui

import "time"

// TickMsg triggers a meter refresh.
type TickMsg time.Time
