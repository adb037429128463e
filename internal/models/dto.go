package models

import "time"

// ===== RESPONSE DTOs =====

// SubmitTypingTestResponse is returned after a successful sample submission
type SubmitTypingTestResponse struct {
	Test     *TypingTest `json:"test"`
	MaxSpeed float64     `json:"maxSpeed"`
	AvgSpeed float64     `json:"avgSpeed"`
}

// TypingStatsResponse mirrors the stats endpoint payload: the newest test
// (null when the user has no history), the stored aggregates and the full
// newest-first history.
type TypingStatsResponse struct {
	LastTest           *TypingTest  `json:"lastTest"`
	MaxTypingSpeed     float64      `json:"maxTypingSpeed"`
	AverageTypingSpeed float64      `json:"averageTypingSpeed"`
	AllTests           []TypingTest `json:"allTests"`
}

// CurrentUserResponse is returned by /auth/current_user
type CurrentUserResponse struct {
	User *User `json:"user"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error            string                    `json:"error"`
	Message          string                    `json:"message"`
	Details          interface{}               `json:"details,omitempty"`
	ValidationErrors []ValidationErrorResponse `json:"validation_errors,omitempty"`
}

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
