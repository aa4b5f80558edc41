package invitation

import (
	"context"
	"errors"
	"fmt"

	"invite.link/models"
	"invite.link/pkg/inviteapi"
)

// ErrSubmissionInFlight is returned when the same event is already being submitted.
var ErrSubmissionInFlight = errors.New("an RSVP for this event is already being submitted")

var errBlankGuests = errors.New("guest names cannot be blank")

// Submitter sends one RSVP intent.
type Submitter interface {
	SubmitRSVP(ctx context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error)
}

// RSVPView is the state behind the RSVP page: the authoritative group, one
// form per event and the page-scoped outcome of the last submission.
type RSVPView struct {
	Token string
	Group models.Group

	forms   map[models.Event]*EventForm
	editing map[models.Event]bool

	Success models.Event // event of the last successful submission, "" for none
	Error   string       // page-scoped, cleared on the next attempt

	Guard *InFlight // optional
}

// NewRSVPView seeds both forms from the group. A declined event shows no
// guests even if the payload listed some.
func NewRSVPView(token string, g models.Group) *RSVPView {
	v := &RSVPView{
		Token:   token,
		Group:   g,
		forms:   make(map[models.Event]*EventForm, len(models.Events)),
		editing: make(map[models.Event]bool, len(models.Events)),
	}
	for _, e := range models.Events {
		f := NewEventForm(g, e)
		v.forms[e] = &f
	}
	return v
}

// Form returns the editable state of an event.
func (v *RSVPView) Form(e models.Event) *EventForm {
	return v.forms[e]
}

// SetForm replaces an event's local state, e.g. with values posted back by
// the browser.
func (v *RSVPView) SetForm(e models.Event, f EventForm) {
	if f.Guests == nil {
		f.Guests = []string{}
	}
	v.forms[e] = &f
}

// Editing reports whether the event shows the form instead of the summary.
func (v *RSVPView) Editing(e models.Event) bool {
	return !v.Group.HasRSVPed(e) || v.editing[e]
}

// Edit re-enters edit mode for one event, keeping its last-known values.
func (v *RSVPView) Edit(e models.Event) {
	v.editing[e] = true
}

// Cancel leaves edit mode without submitting and restores the server values.
func (v *RSVPView) Cancel(e models.Event) {
	v.editing[e] = false
	f := NewEventForm(v.Group, e)
	v.forms[e] = &f
}

// Submit sends the event's form. On success the response group, when present,
// replaces the held group and the event leaves edit mode. On failure the page
// error is set and the form is left as it was so the guest can retry.
func (v *RSVPView) Submit(ctx context.Context, s Submitter, token string, e models.Event) error {
	v.Error = ""
	v.Success = ""

	if v.Guard != nil {
		release, ok := v.Guard.Acquire(token, e)
		if !ok {
			v.Error = fmt.Sprintf("Your RSVP for %s is already being submitted", e)
			return ErrSubmissionInFlight
		}
		defer release()
	}

	f := v.forms[e]
	if f.HasBlankGuests() {
		v.Error = "Guest names cannot be empty"
		return errBlankGuests
	}

	resp, err := s.SubmitRSVP(ctx, token, f.Request(e))
	if err != nil {
		v.Error = SubmissionMessage(err, e)
		return err
	}

	if resp.Group != nil {
		v.Group = *resp.Group
		fresh := NewEventForm(v.Group, e)
		v.forms[e] = &fresh
	}
	v.editing[e] = false
	v.Success = e
	return nil
}

// SubmissionMessage is the guest-facing text for a failed submission. Only
// the backend's own detail is shown verbatim.
func SubmissionMessage(err error, e models.Event) string {
	var subErr *inviteapi.SubmissionError
	if errors.As(err, &subErr) {
		return subErr.Message
	}
	return fmt.Sprintf("Failed to submit RSVP for %s", e)
}

// SectionView is everything a template needs to draw one RSVP section.
type SectionView struct {
	Section
	Form        EventForm
	MaxGuests   int
	Summary     bool
	Accepted    bool
	ShowGuests  bool
	CanAdd      bool
	CanCancel   bool
	Succeeded   bool
	SubmitLabel string
}

// Sections lays out the visible RSVP sections with their current state.
func (v *RSVPView) Sections() []SectionView {
	sections := Sections(v.Group)
	out := make([]SectionView, 0, len(sections))
	for _, s := range sections {
		f := v.forms[s.Event]
		limit := v.Group.MaxGuests(s.Event)
		rsvped := v.Group.HasRSVPed(s.Event)

		sv := SectionView{
			Section:    s,
			Form:       *f,
			MaxGuests:  limit,
			Summary:    !v.Editing(s.Event),
			Accepted:   v.Group.HasAccepted(s.Event),
			ShowGuests: f.Accepting && limit != models.NoExtraGuests,
			CanAdd:     f.CanAddGuest(limit),
			CanCancel:  rsvped,
			Succeeded:  v.Success == s.Event,
		}
		if rsvped {
			sv.SubmitLabel = "Update RSVP"
		} else {
			sv.SubmitLabel = "Submit " + s.Title + " RSVP"
		}
		out = append(out, sv)
	}
	return out
}

// MultipleSections reports whether the guest has to answer more than once.
func (v *RSVPView) MultipleSections() bool {
	return len(Sections(v.Group)) > 1
}
