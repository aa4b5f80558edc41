package inviteapi

import "fmt"

// DefaultSubmissionMessage is used when a failed submission carries no detail.
const DefaultSubmissionMessage = "Failed to submit RSVP"

// InvalidTokenError means the token is missing or the backend would not
// resolve it. Every non-2xx status is reported this way, 404 included.
type InvalidTokenError struct {
	Status int // 0 when no request was made
}

func (e *InvalidTokenError) Error() string {
	if e.Status == 0 {
		return "invalid invitation token"
	}
	return fmt.Sprintf("invalid invitation token (status %d)", e.Status)
}

// SubmissionError is a rejected RSVP submission. Message is human readable and
// safe to show to the guest.
type SubmissionError struct {
	Status  int
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}
