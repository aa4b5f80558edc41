package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RSVPRequest is the outbound intent for one event.
type RSVPRequest struct {
	Event  Event    `json:"event"`
	Accept bool     `json:"accept"`
	Guests []string `json:"guests"`
}

// RSVPResponse is what the API answers to a submission. Group, when present,
// is the new authoritative state.
type RSVPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Group   *Group `json:"group,omitempty"`
}

var errBlankGuestName = validation.NewError("validation_blank_guest", "guest names cannot be blank")

var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlankGuestName
	}
	return nil
})

// Validate enforces the submission constraints: a known event, no guests when
// declining and no blank guest names when accepting.
func (r RSVPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Event, validation.Required, validation.In(EventWedding, EventHenna)),
		validation.Field(&r.Guests,
			validation.When(!r.Accept, validation.Empty.Error("must be empty when declining")),
			validation.When(r.Accept, validation.Each(notBlank)),
		),
	)
}
