package services_test

import (
	"context"
	"testing"

	"invite.link/database/testdb"
	"invite.link/models"
	"invite.link/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (services.IGroupService, *models.InvitationGroup) {
	t.Helper()
	testdb.Open(t)
	svc := services.NewGroupService()
	group, err := svc.CreateGroup(context.Background(), services.CreateGroupInput{
		Name:             "The Khans",
		MaxGuestsWedding: 2,
		MaxGuestsHenna:   models.NoExtraGuests,
		InvitedToNikkah:  true,
		InvitedToWedding: true,
		InvitedToHenna:   true,
	})
	require.NoError(t, err)
	return svc, group
}

func TestGroupService_Verify(t *testing.T) {
	svc, group := setupService(t)
	ctx := context.Background()

	g, err := svc.Verify(ctx, group.Token)
	require.NoError(t, err)
	assert.Equal(t, "The Khans", g.Name)
	assert.NotNil(t, g.WeddingGuests)
	assert.NotNil(t, g.HennaGuests)

	_, err = svc.Verify(ctx, "unknown")
	assert.ErrorIs(t, err, services.ErrGroupNotFound)
	assert.EqualError(t, err, "Invalid invitation token")

	first, err := svc.Status(ctx, group.Token)
	require.NoError(t, err)
	second, err := svc.Status(ctx, group.Token)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGroupService_SubmitRSVPAccept(t *testing.T) {
	svc, group := setupService(t)
	ctx := context.Background()

	resp, err := svc.SubmitRSVP(ctx, group.Token, models.RSVPRequest{
		Event:  models.EventWedding,
		Accept: true,
		Guests: []string{"  Alice ", "Bob"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "RSVP for wedding submitted successfully", resp.Message)
	require.NotNil(t, resp.Group)
	assert.True(t, resp.Group.HasRSVPedWedding)
	assert.True(t, resp.Group.HasAcceptedWedding)
	assert.Equal(t, []string{"Alice", "Bob"}, resp.Group.GuestNames(models.EventWedding))
	assert.False(t, resp.Group.HasRSVPedHenna)

	// a second submission replaces the list
	resp, err = svc.SubmitRSVP(ctx, group.Token, models.RSVPRequest{
		Event: models.EventWedding, Accept: true, Guests: []string{"Carol"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol"}, resp.Group.GuestNames(models.EventWedding))
}

func TestGroupService_SubmitRSVPDecline(t *testing.T) {
	svc, group := setupService(t)
	ctx := context.Background()

	_, err := svc.SubmitRSVP(ctx, group.Token, models.RSVPRequest{
		Event: models.EventWedding, Accept: true, Guests: []string{"Alice"},
	})
	require.NoError(t, err)

	resp, err := svc.SubmitRSVP(ctx, group.Token, models.RSVPRequest{
		Event: models.EventWedding, Accept: false, Guests: []string{"ignored"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Group.HasRSVPedWedding)
	assert.False(t, resp.Group.HasAcceptedWedding)
	assert.Empty(t, resp.Group.WeddingGuests)

	resp, err = svc.SubmitRSVP(ctx, group.Token, models.RSVPRequest{
		Event: models.EventHenna, Accept: false, Guests: []string{},
	})
	require.NoError(t, err)
	assert.True(t, resp.Group.HasRSVPedHenna)
	assert.False(t, resp.Group.HasAcceptedHenna)
}

func TestGroupService_SubmitRSVPRejections(t *testing.T) {
	svc, group := setupService(t)
	ctx := context.Background()

	henna, err := svc.CreateGroup(ctx, services.CreateGroupInput{
		Name: "Sarah", MaxGuestsHenna: 5, InvitedToHenna: true,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		req     models.RSVPRequest
		target  error
		message string
	}{
		{
			name:    "unknown event",
			token:   group.Token,
			req:     models.RSVPRequest{Event: "birthday", Accept: true},
			target:  services.ErrInvalidEvent,
			message: "Event must be either 'wedding' or 'henna'",
		},
		{
			name:    "event not on the invitation",
			token:   henna.Token,
			req:     models.RSVPRequest{Event: models.EventWedding, Accept: true},
			target:  services.ErrEventNotInvited,
			message: "This invitation does not include the wedding",
		},
		{
			name:    "no extra guests allowed",
			token:   group.Token,
			req:     models.RSVPRequest{Event: models.EventHenna, Accept: true, Guests: []string{"Maryam"}},
			target:  services.ErrNoExtraGuests,
			message: "This invitation does not allow additional guests",
		},
		{
			name:    "over the cap",
			token:   group.Token,
			req:     models.RSVPRequest{Event: models.EventWedding, Accept: true, Guests: []string{"A", "B", "C"}},
			target:  services.ErrTooManyGuests,
			message: "Cannot add 3 guests. Maximum allowed: 2",
		},
		{
			name:    "blank guest name",
			token:   group.Token,
			req:     models.RSVPRequest{Event: models.EventWedding, Accept: true, Guests: []string{"Alice", "  "}},
			target:  services.ErrBlankGuestName,
			message: "Guest names cannot be empty",
		},
		{
			name:    "unknown token",
			token:   "missing",
			req:     models.RSVPRequest{Event: models.EventWedding, Accept: true},
			target:  services.ErrGroupNotFound,
			message: "Invalid invitation token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitRSVP(ctx, tt.token, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.EqualError(t, err, tt.message)
			assert.Equal(t, tt.target != services.ErrGroupNotFound, services.IsRejection(err))
		})
	}

	g, err := svc.Status(ctx, group.Token)
	require.NoError(t, err)
	assert.False(t, g.HasRSVPedWedding)
	assert.False(t, g.HasRSVPedHenna)
}

func TestGroupService_UnlimitedGuests(t *testing.T) {
	testdb.Open(t)
	svc := services.NewGroupService()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, services.CreateGroupInput{
		Name: "Open House", MaxGuestsWedding: models.UnlimitedGuests, InvitedToWedding: true,
	})
	require.NoError(t, err)

	guests := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	resp, err := svc.SubmitRSVP(ctx, group.Token, models.RSVPRequest{
		Event: models.EventWedding, Accept: true, Guests: guests,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Group.WeddingGuests, len(guests))
}

func TestGroupService_CreateAndList(t *testing.T) {
	testdb.Open(t)
	svc := services.NewGroupService()
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, services.CreateGroupInput{Name: "   "})
	assert.ErrorIs(t, err, services.ErrGroupInvalidInput)

	_, err = svc.CreateGroup(ctx, services.CreateGroupInput{Name: "Bad Cap", MaxGuestsWedding: -2})
	assert.ErrorIs(t, err, services.ErrGroupInvalidInput)

	created, err := svc.CreateGroup(ctx, services.CreateGroupInput{
		Name: "  John Doe ", InvitedToWedding: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", created.Name)
	assert.False(t, created.InvitedToNikkah)
	assert.False(t, created.InvitedToHenna)

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, created.Token, groups[0].Token)
	assert.False(t, groups[0].InvitedToHenna)
}
