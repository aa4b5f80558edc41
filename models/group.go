package models

// Guest is one named attendee added by a group for an event.
type Guest struct {
	ID        int64  `json:"id"`
	GroupID   int64  `json:"group_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Group is the unit of invitation as served by the RSVP API.
// MaxGuests* use -1 for unlimited and 0 for "primary invitee only".
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	InvitedToNikkah  bool `json:"invited_to_nikkah"`
	InvitedToWedding bool `json:"invited_to_wedding"`
	InvitedToHenna   bool `json:"invited_to_henna"`

	MaxGuestsWedding int `json:"max_guests_wedding"`
	MaxGuestsHenna   int `json:"max_guests_henna"`

	HasAcceptedWedding bool `json:"has_accepted_wedding"`
	HasAcceptedHenna   bool `json:"has_accepted_henna"`
	HasRSVPedWedding   bool `json:"has_rsvped_wedding"`
	HasRSVPedHenna     bool `json:"has_rsvped_henna"`

	WeddingGuests []Guest `json:"wedding_guests"`
	HennaGuests   []Guest `json:"henna_guests"`
}

const (
	// UnlimitedGuests as a cap allows any number of guests.
	UnlimitedGuests = -1
	// NoExtraGuests as a cap allows only the primary invitee.
	NoExtraGuests = 0
)

// Event is an occasion that takes RSVPs. The Nikkah shares the wedding RSVP.
type Event string

const (
	EventWedding Event = "wedding"
	EventHenna   Event = "henna"
)

// Events lists the RSVP events in display order.
var Events = []Event{EventWedding, EventHenna}

// Valid reports whether e is one of the RSVP events.
func (e Event) Valid() bool {
	return e == EventWedding || e == EventHenna
}

func (e Event) String() string { return string(e) }

// ParseEvent converts a raw value into an Event.
func ParseEvent(raw string) (Event, bool) {
	e := Event(raw)
	return e, e.Valid()
}

// MaxGuests returns the guest cap for the event.
func (g *Group) MaxGuests(e Event) int {
	if e == EventHenna {
		return g.MaxGuestsHenna
	}
	return g.MaxGuestsWedding
}

// HasRSVPed reports whether the group has answered for the event at all.
func (g *Group) HasRSVPed(e Event) bool {
	if e == EventHenna {
		return g.HasRSVPedHenna
	}
	return g.HasRSVPedWedding
}

// HasAccepted reports the acceptance flag. Only meaningful when HasRSVPed is true.
func (g *Group) HasAccepted(e Event) bool {
	if e == EventHenna {
		return g.HasAcceptedHenna
	}
	return g.HasAcceptedWedding
}

// Guests returns the event's guest list.
func (g *Group) Guests(e Event) []Guest {
	if e == EventHenna {
		return g.HennaGuests
	}
	return g.WeddingGuests
}

// InvitedTo reports whether the group may RSVP for the event.
func (g *Group) InvitedTo(e Event) bool {
	if e == EventHenna {
		return g.InvitedToHenna
	}
	return g.InvitedToWedding
}

// GuestNames returns the names of the event's guests in order.
func (g *Group) GuestNames(e Event) []string {
	guests := g.Guests(e)
	names := make([]string, 0, len(guests))
	for _, guest := range guests {
		names = append(names, guest.Name)
	}
	return names
}
