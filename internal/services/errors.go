package services

import "errors"

// Sentinel errors the handlers translate into status codes. Local recoverable
// anomalies (empty model output, unparseable structured output) never surface
// here; they are replaced with safe defaults inside the services.
var (
	// ErrEmptyContent marks a data-shape problem: required text is missing.
	ErrEmptyContent = errors.New("content is required")

	// ErrAIUnavailable means no text-generation provider is configured.
	ErrAIUnavailable = errors.New("AI service not initialized")

	// ErrNoConversationToday means journal generation found nothing to
	// summarize for the calling account.
	ErrNoConversationToday = errors.New("no conversations found for today")

	ErrNotFound = errors.New("not found")
)
