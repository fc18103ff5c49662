package models

import (
	"strings"
	"time"
)

// DebugLogSeparator closes every debug log entry
const DebugLogSeparator = "=============================================\n"

// DebugLogEntry is a debug payload returned by the routing backend
type DebugLogEntry struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"-"`
	RequestType string    `json:"request_type"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Text frames the message the way the debug log panel shows it
func (e DebugLogEntry) Text() string {
	var b strings.Builder
	b.WriteString("Debug log for " + e.RequestType + " request\n")
	b.WriteString(e.Message)
	b.WriteString("End of log for " + e.RequestType + " request\n")
	b.WriteString(DebugLogSeparator)
	return b.String()
}

// DebugLog is the debug log of one session
type DebugLog struct {
	Visible bool            `json:"visible"`
	Entries []DebugLogEntry `json:"entries"`
	Text    string          `json:"text"`
}
