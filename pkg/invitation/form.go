package invitation

import (
	"strings"

	"invite.link/models"
)

// EventForm is the editable RSVP state of one event. Guest positions are
// stable indices for the duration of an edit.
type EventForm struct {
	Accepting bool
	Guests    []string
}

// NewEventForm seeds a form from the server state. Before the group has
// answered, attending is the pre-filled default.
func NewEventForm(g models.Group, e models.Event) EventForm {
	f := EventForm{Accepting: true, Guests: g.GuestNames(e)}
	if g.HasRSVPed(e) {
		f.Accepting = g.HasAccepted(e)
	}
	if !f.Accepting {
		f.Guests = []string{}
	}
	return f
}

// SetAccepting toggles attendance. Declining drops every guest.
func (f *EventForm) SetAccepting(accepting bool) {
	f.Accepting = accepting
	if !accepting {
		f.Guests = []string{}
	}
}

// CanAddGuest reports whether another guest slot fits under limit.
func (f *EventForm) CanAddGuest(limit int) bool {
	switch {
	case !f.Accepting:
		return false
	case limit == models.NoExtraGuests:
		return false
	case limit == models.UnlimitedGuests:
		return true
	}
	return len(f.Guests) < limit
}

// AddGuest appends a blank guest slot when the cap allows it.
func (f *EventForm) AddGuest(limit int) bool {
	if !f.CanAddGuest(limit) {
		return false
	}
	f.Guests = append(f.Guests, "")
	return true
}

// RemoveGuest drops the guest at index i.
func (f *EventForm) RemoveGuest(i int) bool {
	if i < 0 || i >= len(f.Guests) {
		return false
	}
	f.Guests = append(f.Guests[:i:i], f.Guests[i+1:]...)
	return true
}

// RenameGuest sets the name at index i.
func (f *EventForm) RenameGuest(i int, name string) bool {
	if i < 0 || i >= len(f.Guests) {
		return false
	}
	f.Guests[i] = name
	return true
}

// HasBlankGuests reports a blank guest field while accepting. Submission is
// blocked in that case.
func (f *EventForm) HasBlankGuests() bool {
	if !f.Accepting {
		return false
	}
	for _, g := range f.Guests {
		if strings.TrimSpace(g) == "" {
			return true
		}
	}
	return false
}

// Request builds the submission: trimmed non-blank names when accepting, no
// guests when declining.
func (f *EventForm) Request(e models.Event) models.RSVPRequest {
	req := models.RSVPRequest{Event: e, Accept: f.Accepting, Guests: []string{}}
	if !f.Accepting {
		return req
	}
	for _, g := range f.Guests {
		if name := strings.TrimSpace(g); name != "" {
			req.Guests = append(req.Guests, name)
		}
	}
	return req
}
