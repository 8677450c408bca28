package domain

// FeedbackMessageLen is the fixed slot width of the on-disk message field.
const FeedbackMessageLen = 1034

// Feedback is an append-only customer note. No key, no uniqueness.
type Feedback struct {
	AccountID int32
	Message   string
}
