package invitation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"invite.link/models"
	"invite.link/pkg/inviteapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGroup() models.Group {
	return models.Group{
		ID:               1,
		Name:             "The Khans",
		InvitedToNikkah:  true,
		InvitedToWedding: true,
		InvitedToHenna:   false,
		MaxGuestsWedding: 2,
		MaxGuestsHenna:   0,
		WeddingGuests:    []models.Guest{},
		HennaGuests:      []models.Guest{},
	}
}

func labels(tabs []Tab) []string {
	out := make([]string, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, t.Label)
	}
	return out
}

func TestTabs(t *testing.T) {
	g := testGroup()
	assert.Equal(t, []string{"Nikkah", "RSVP"}, labels(Tabs(g)))

	g.InvitedToNikkah = false
	assert.Equal(t, []string{"Reception", "RSVP"}, labels(Tabs(g)))

	g.InvitedToWedding = false
	g.InvitedToNikkah = true
	g.InvitedToHenna = true
	assert.Equal(t, []string{"Nikkah", "Henna", "RSVP"}, labels(Tabs(g)))

	g.InvitedToNikkah = false
	assert.Equal(t, []string{"Henna", "RSVP"}, labels(Tabs(g)))

	g.InvitedToHenna = false
	assert.Equal(t, []string{"RSVP"}, labels(Tabs(g)))
}

func TestTab_Href(t *testing.T) {
	assert.Equal(t, "/abc123/henna", Tab{Page: PageHenna}.Href("abc123"))
}

func TestNikkahPage(t *testing.T) {
	g := testGroup()
	d := NikkahPage(g)
	assert.Equal(t, "Nikkah & Reception", d.Title)
	require.Len(t, d.Schedule, 3)
	assert.Equal(t, "Nikkah Ceremony", d.Schedule[0].Label)
	assert.Equal(t, "Cocktail Hour", d.Schedule[1].Label)
	assert.Equal(t, "Reception & Dinner", d.Schedule[2].Label)

	g.InvitedToWedding = false
	d = NikkahPage(g)
	assert.Equal(t, "Nikkah Ceremony", d.Title)
	assert.Len(t, d.Schedule, 2)

	g.InvitedToNikkah = false
	g.InvitedToWedding = true
	d = NikkahPage(g)
	assert.Equal(t, "Reception", d.Title)
	require.Len(t, d.Schedule, 1)
	assert.Equal(t, "5pm - 9pm", d.Schedule[0].Time)
}

func TestSections(t *testing.T) {
	g := testGroup()
	sections := Sections(g)
	require.Len(t, sections, 1)
	assert.Equal(t, "Nikkah & Reception", sections[0].Title)
	assert.Equal(t, "3pm - 9pm", sections[0].Time)
	assert.Equal(t, "Mixed Event", sections[0].Audience)

	g.InvitedToNikkah = false
	g.InvitedToHenna = true
	sections = Sections(g)
	require.Len(t, sections, 2)
	assert.Equal(t, "Reception", sections[0].Title)
	assert.Equal(t, "5pm - 9pm", sections[0].Time)
	assert.Equal(t, models.EventHenna, sections[1].Event)
	assert.Equal(t, "Women Only", sections[1].Audience)

	// The nikkah alone has no RSVP of its own.
	g.InvitedToNikkah = true
	g.InvitedToWedding = false
	g.InvitedToHenna = false
	assert.Empty(t, Sections(g))
}

func TestVerification_Lifecycle(t *testing.T) {
	var v Verification
	_, state, _ := v.State()
	assert.Equal(t, Unverified, state)

	ticket := v.Begin("abc123")
	require.True(t, v.Complete(ticket, testGroup(), nil))

	token, state, group := v.State()
	assert.Equal(t, "abc123", token)
	assert.Equal(t, Valid, state)
	assert.Equal(t, "The Khans", group.Name)

	// Resolved tokens stay resolved.
	again := v.Begin("abc123")
	assert.False(t, v.Complete(again, models.Group{}, errors.New("boom")))
	_, state, _ = v.State()
	assert.Equal(t, Valid, state)
}

func TestVerification_InvalidOnAnyError(t *testing.T) {
	var v Verification
	ticket := v.Begin("bad-token")
	require.True(t, v.Complete(ticket, models.Group{}, &inviteapi.InvalidTokenError{Status: 404}))

	_, state, _ := v.State()
	assert.Equal(t, Invalid, state)
	var invalid *inviteapi.InvalidTokenError
	assert.True(t, errors.As(v.Err(), &invalid))
}

func TestVerification_StaleResultIsDiscarded(t *testing.T) {
	var v Verification
	first := v.Begin("old-token")
	second := v.Begin("new-token")

	// The old verification finishes last but must not win.
	require.True(t, v.Complete(second, models.Group{}, errors.New("not found")))
	assert.False(t, v.Complete(first, testGroup(), nil))

	token, state, _ := v.State()
	assert.Equal(t, "new-token", token)
	assert.Equal(t, Invalid, state)
}

func TestVerification_NewTokenRestarts(t *testing.T) {
	var v Verification
	require.True(t, v.Complete(v.Begin("abc123"), testGroup(), nil))

	ticket := v.Begin("xyz789")
	_, state, _ := v.State()
	assert.Equal(t, Unverified, state)

	require.True(t, v.Complete(ticket, testGroup(), nil))
	_, state, _ = v.State()
	assert.Equal(t, Valid, state)
}

func TestEventForm_CanAddGuestBoundaries(t *testing.T) {
	f := EventForm{Accepting: true}
	assert.False(t, f.CanAddGuest(models.NoExtraGuests))
	assert.False(t, f.AddGuest(models.NoExtraGuests))
	assert.Empty(t, f.Guests)

	for i := 0; i < 50; i++ {
		require.True(t, f.AddGuest(models.UnlimitedGuests))
	}
	assert.Len(t, f.Guests, 50)

	capped := EventForm{Accepting: true}
	assert.True(t, capped.AddGuest(2))
	assert.True(t, capped.AddGuest(2))
	assert.False(t, capped.AddGuest(2))

	declining := EventForm{Accepting: false}
	assert.False(t, declining.CanAddGuest(models.UnlimitedGuests))
}

func TestEventForm_EditByPosition(t *testing.T) {
	f := EventForm{Accepting: true, Guests: []string{"Alice", "Bob", "Cara"}}
	original := f.Guests

	require.True(t, f.RenameGuest(1, "Bilal"))
	require.True(t, f.RemoveGuest(0))
	assert.Equal(t, []string{"Bilal", "Cara"}, f.Guests)
	assert.Equal(t, "Alice", original[0], "removal must not write through to the old slice")

	assert.False(t, f.RemoveGuest(5))
	assert.False(t, f.RenameGuest(-1, "x"))
}

func TestEventForm_RequestDropsBlankNames(t *testing.T) {
	f := EventForm{Accepting: true, Guests: []string{"Alice", "  ", "Bob"}}
	assert.True(t, f.HasBlankGuests())

	req := f.Request(models.EventWedding)
	assert.Equal(t, models.RSVPRequest{Event: models.EventWedding, Accept: true, Guests: []string{"Alice", "Bob"}}, req)
}

func TestEventForm_DeclineClearsGuests(t *testing.T) {
	f := EventForm{Accepting: true, Guests: []string{"Alice"}}
	f.SetAccepting(false)
	assert.Empty(t, f.Guests)
	assert.False(t, f.HasBlankGuests())

	req := f.Request(models.EventHenna)
	assert.Equal(t, models.RSVPRequest{Event: models.EventHenna, Accept: false, Guests: []string{}}, req)
}

func TestNewEventForm_Seeding(t *testing.T) {
	g := testGroup()
	g.WeddingGuests = []models.Guest{{ID: 1, GroupID: 1, Name: "Alice"}}

	f := NewEventForm(g, models.EventWedding)
	assert.True(t, f.Accepting, "unanswered events default to attending")
	assert.Equal(t, []string{"Alice"}, f.Guests)

	// Declined but the payload still lists guests.
	g.HasRSVPedWedding = true
	g.HasAcceptedWedding = false
	f = NewEventForm(g, models.EventWedding)
	assert.False(t, f.Accepting)
	assert.Empty(t, f.Guests)
}

// submitterFunc adapts a function to Submitter.
type submitterFunc func(ctx context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error)

func (f submitterFunc) SubmitRSVP(ctx context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error) {
	return f(ctx, token, req)
}

func TestRSVPView_SubmitSuccessReplacesGroup(t *testing.T) {
	g := testGroup()
	g.InvitedToHenna = true
	v := NewRSVPView("abc123", g)
	v.Form(models.EventWedding).AddGuest(g.MaxGuestsWedding)
	v.Form(models.EventWedding).RenameGuest(0, " Alice ")

	updated := g
	updated.HasRSVPedWedding = true
	updated.HasAcceptedWedding = true
	updated.WeddingGuests = []models.Guest{{ID: 9, GroupID: 1, Name: "Alice"}}

	var sent models.RSVPRequest
	s := submitterFunc(func(_ context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error) {
		assert.Equal(t, "abc123", token)
		sent = req
		return models.RSVPResponse{Success: true, Message: "ok", Group: &updated}, nil
	})

	require.NoError(t, v.Submit(context.Background(), s, "abc123", models.EventWedding))
	assert.Equal(t, []string{"Alice"}, sent.Guests)
	assert.Equal(t, models.EventWedding, v.Success)
	assert.Empty(t, v.Error)
	assert.True(t, v.Group.HasRSVPedWedding)
	assert.False(t, v.Editing(models.EventWedding))
	assert.True(t, v.Editing(models.EventHenna))

	sections := v.Sections()
	require.Len(t, sections, 2)
	assert.True(t, sections[0].Succeeded)
	assert.True(t, sections[0].Summary)
	assert.False(t, sections[1].Succeeded)
}

func TestRSVPView_SubmitFailureKeepsForm(t *testing.T) {
	v := NewRSVPView("abc123", testGroup())
	v.SetForm(models.EventWedding, EventForm{Accepting: true, Guests: []string{"Alice"}})

	s := submitterFunc(func(context.Context, string, models.RSVPRequest) (models.RSVPResponse, error) {
		return models.RSVPResponse{}, &inviteapi.SubmissionError{Status: 400, Message: "Event closed"}
	})
	err := v.Submit(context.Background(), s, "abc123", models.EventWedding)
	require.Error(t, err)
	assert.Equal(t, "Event closed", v.Error)
	assert.Equal(t, []string{"Alice"}, v.Form(models.EventWedding).Guests)
	assert.Empty(t, v.Success)

	transport := submitterFunc(func(context.Context, string, models.RSVPRequest) (models.RSVPResponse, error) {
		return models.RSVPResponse{}, errors.New("connection refused")
	})
	require.Error(t, v.Submit(context.Background(), transport, "abc123", models.EventWedding))
	assert.Equal(t, "Failed to submit RSVP for wedding", v.Error)
}

func TestRSVPView_HennaDeclineAfterGuests(t *testing.T) {
	g := testGroup()
	g.InvitedToHenna = true
	g.MaxGuestsHenna = models.UnlimitedGuests
	v := NewRSVPView("abc123", g)

	henna := v.Form(models.EventHenna)
	henna.AddGuest(g.MaxGuestsHenna)
	henna.RenameGuest(0, "Maryam")
	henna.SetAccepting(false)

	var sent models.RSVPRequest
	s := submitterFunc(func(_ context.Context, _ string, req models.RSVPRequest) (models.RSVPResponse, error) {
		sent = req
		return models.RSVPResponse{Success: true, Message: "ok"}, nil
	})
	require.NoError(t, v.Submit(context.Background(), s, "abc123", models.EventHenna))
	assert.Equal(t, models.RSVPRequest{Event: models.EventHenna, Accept: false, Guests: []string{}}, sent)
}

func TestRSVPView_BlankGuestBlocksSubmit(t *testing.T) {
	v := NewRSVPView("abc123", testGroup())
	v.Form(models.EventWedding).AddGuest(2)
	assert.True(t, v.Form(models.EventWedding).HasBlankGuests())

	called := false
	s := submitterFunc(func(context.Context, string, models.RSVPRequest) (models.RSVPResponse, error) {
		called = true
		return models.RSVPResponse{}, nil
	})
	assert.Error(t, v.Submit(context.Background(), s, "abc123", models.EventWedding))
	assert.False(t, called)
	assert.Equal(t, "Guest names cannot be empty", v.Error)
}

func TestRSVPView_EditAndCancel(t *testing.T) {
	g := testGroup()
	g.HasRSVPedWedding = true
	g.HasAcceptedWedding = true
	g.WeddingGuests = []models.Guest{{ID: 1, GroupID: 1, Name: "Alice"}}
	v := NewRSVPView("abc123", g)

	assert.False(t, v.Editing(models.EventWedding))
	v.Edit(models.EventWedding)
	assert.True(t, v.Editing(models.EventWedding))
	assert.Equal(t, []string{"Alice"}, v.Form(models.EventWedding).Guests)

	v.Form(models.EventWedding).SetAccepting(false)
	v.Cancel(models.EventWedding)
	assert.False(t, v.Editing(models.EventWedding))
	assert.True(t, v.Form(models.EventWedding).Accepting)
	assert.Equal(t, []string{"Alice"}, v.Form(models.EventWedding).Guests)
}

func TestRSVPView_InFlightGuard(t *testing.T) {
	g := testGroup()
	g.InvitedToHenna = true
	guard := NewInFlight()

	started := make(chan struct{})
	finish := make(chan struct{})
	slow := submitterFunc(func(context.Context, string, models.RSVPRequest) (models.RSVPResponse, error) {
		close(started)
		<-finish
		return models.RSVPResponse{Success: true, Message: "ok"}, nil
	})
	fast := submitterFunc(func(context.Context, string, models.RSVPRequest) (models.RSVPResponse, error) {
		return models.RSVPResponse{Success: true, Message: "ok"}, nil
	})

	first := NewRSVPView("abc123", g)
	first.Guard = guard

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, first.Submit(context.Background(), slow, "abc123", models.EventWedding))
	}()
	<-started

	second := NewRSVPView("abc123", g)
	second.Guard = guard
	assert.ErrorIs(t, second.Submit(context.Background(), fast, "abc123", models.EventWedding), ErrSubmissionInFlight)

	// The other event is independent.
	assert.NoError(t, second.Submit(context.Background(), fast, "abc123", models.EventHenna))

	close(finish)
	wg.Wait()
	release, ok := guard.Acquire("abc123", models.EventWedding)
	require.True(t, ok)
	release()
}

func TestInFlight_ReleaseIsIdempotent(t *testing.T) {
	r := NewInFlight()
	release, ok := r.Acquire("abc123", models.EventHenna)
	require.True(t, ok)
	release()
	release()

	again, ok := r.Acquire("abc123", models.EventHenna)
	require.True(t, ok)
	_, ok = r.Acquire("abc123", models.EventHenna)
	assert.False(t, ok)
	again()
}

func TestRSVPView_SectionLabels(t *testing.T) {
	g := testGroup()
	v := NewRSVPView("abc123", g)
	sections := v.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "Submit Nikkah & Reception RSVP", sections[0].SubmitLabel)
	assert.True(t, sections[0].ShowGuests)
	assert.False(t, v.MultipleSections())

	g.HasRSVPedWedding = true
	g.HasAcceptedWedding = true
	v = NewRSVPView("abc123", g)
	v.Edit(models.EventWedding)
	assert.Equal(t, "Update RSVP", v.Sections()[0].SubmitLabel)
	assert.True(t, v.Sections()[0].CanCancel)
}
