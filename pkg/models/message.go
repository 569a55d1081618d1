package models

import "time"

// Message types for WebSocket communication
const (
	MessageTypeEntryAppended       = "entry_appended"
	MessageTypeStatsUpdated        = "stats_updated"
	MessageTypeSimulationCompleted = "simulation_completed"
	MessageTypeSubscribe           = "subscribe"
	MessageTypeUnsubscribe         = "unsubscribe"
	MessageTypeHeartbeat           = "heartbeat"
	MessageTypeError               = "error"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// AnalyticsUpdate is the broadcast payload for ledger and simulation events
type AnalyticsUpdate struct {
	Type       string              `json:"type"` // One of the MessageType* event constants
	Entry      *BankrollEntry      `json:"entry,omitempty"`
	Statistics *BankrollStatistics `json:"statistics,omitempty"`
	Report     *MonteCarloReport   `json:"report,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// SubscriptionFilter represents client subscription preferences.
// An empty Events list subscribes to everything.
type SubscriptionFilter struct {
	Events []string `json:"events,omitempty"` // Filter by event types
}

// ErrorMessage represents an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
