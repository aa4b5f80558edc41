package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invite.link/configs/configsdatabase"
	"invite.link/configs/configslog"
	"invite.link/models"
	"invite.link/repositories"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GroupServiceError is a sentinel returned by the group service. Its text is
// what API clients see in the "detail" field.
type GroupServiceError string

func (e GroupServiceError) Error() string { return string(e) }

const (
	ErrGroupNotFound     GroupServiceError = "Invalid invitation token"
	ErrInvalidEvent      GroupServiceError = "Event must be either 'wedding' or 'henna'"
	ErrEventNotInvited   GroupServiceError = "This invitation does not include the event"
	ErrNoExtraGuests     GroupServiceError = "This invitation does not allow additional guests"
	ErrTooManyGuests     GroupServiceError = "Too many guests"
	ErrBlankGuestName    GroupServiceError = "Guest names cannot be empty"
	ErrRSVPFailed        GroupServiceError = "RSVP could not be saved"
	ErrGroupInvalidInput GroupServiceError = "invalid group data"
	ErrGroupCreateFailed GroupServiceError = "group could not be created"
	ErrGroupLookupFailed GroupServiceError = "group could not be loaded"
)

// rejection carries a message specific to one request while still matching
// its sentinel with errors.Is.
type rejection struct {
	sentinel GroupServiceError
	detail   string
}

func (r *rejection) Error() string { return r.detail }
func (r *rejection) Unwrap() error { return r.sentinel }

// IsRejection reports whether err is a rule violation of the submitted RSVP
// (HTTP 400), as opposed to an unknown token or a storage failure.
func IsRejection(err error) bool {
	for _, sentinel := range []GroupServiceError{
		ErrInvalidEvent, ErrEventNotInvited, ErrNoExtraGuests, ErrTooManyGuests, ErrBlankGuestName,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// CreateGroupInput is what an administrator supplies for a new group.
type CreateGroupInput struct {
	Name             string
	MaxGuestsWedding int
	MaxGuestsHenna   int
	InvitedToNikkah  bool
	InvitedToWedding bool
	InvitedToHenna   bool
}

// Validate checks the name and the guest caps (-1 unlimited, 0 none, N).
func (in CreateGroupInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.MaxGuestsWedding, validation.Min(models.UnlimitedGuests)),
		validation.Field(&in.MaxGuestsHenna, validation.Min(models.UnlimitedGuests)),
	)
}

// IGroupService is the RSVP backend: token lookups, RSVP storage and group administration.
type IGroupService interface {
	Verify(ctx context.Context, token string) (models.Group, error)
	Status(ctx context.Context, token string) (models.Group, error)
	SubmitRSVP(ctx context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error)
	CreateGroup(ctx context.Context, input CreateGroupInput) (*models.InvitationGroup, error)
	ListGroups(ctx context.Context) ([]models.InvitationGroup, error)
}

// GroupService implements IGroupService.
type GroupService struct {
	repo repositories.IGroupRepository
	db   *gorm.DB
}

var _ IGroupService = (*GroupService)(nil)

// NewGroupService uses the shared database connection.
func NewGroupService() IGroupService {
	return &GroupService{
		repo: repositories.NewGroupRepository(),
		db:   configsdatabase.GetDB(),
	}
}

func (s *GroupService) findGroup(ctx context.Context, token string) (*models.InvitationGroup, error) {
	group, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrGroupLookupFailed, err)
	}
	return group, nil
}

// Verify resolves a token to its group.
func (s *GroupService) Verify(ctx context.Context, token string) (models.Group, error) {
	group, err := s.findGroup(ctx, token)
	if err != nil {
		return models.Group{}, err
	}
	return group.ToGroup(), nil
}

// Status returns the current RSVP state of the token's group.
func (s *GroupService) Status(ctx context.Context, token string) (models.Group, error) {
	return s.Verify(ctx, token)
}

// checkRSVP applies the submission rules in order. The first violation wins.
func checkRSVP(group *models.InvitationGroup, req models.RSVPRequest) error {
	event, ok := models.ParseEvent(string(req.Event))
	if !ok {
		return ErrInvalidEvent
	}
	g := group.ToGroup()
	if !g.InvitedTo(event) {
		return &rejection{sentinel: ErrEventNotInvited, detail: fmt.Sprintf("This invitation does not include the %s", event)}
	}
	if !req.Accept {
		return nil
	}

	limit := g.MaxGuests(event)
	count := len(req.Guests)
	switch {
	case limit == models.NoExtraGuests && count > 0:
		return ErrNoExtraGuests
	case limit > 0 && count > limit:
		return &rejection{sentinel: ErrTooManyGuests, detail: fmt.Sprintf("Cannot add %d guests. Maximum allowed: %d", count, limit)}
	}
	for _, name := range req.Guests {
		if strings.TrimSpace(name) == "" {
			return ErrBlankGuestName
		}
	}
	return nil
}

// SubmitRSVP replaces the event's guest list and answer in one transaction
// and returns the updated group.
func (s *GroupService) SubmitRSVP(ctx context.Context, token string, req models.RSVPRequest) (models.RSVPResponse, error) {
	group, err := s.findGroup(ctx, token)
	if err != nil {
		return models.RSVPResponse{}, err
	}
	if err := checkRSVP(group, req); err != nil {
		return models.RSVPResponse{}, err
	}

	var names []string
	if req.Accept {
		names = make([]string, 0, len(req.Guests))
		for _, name := range req.Guests {
			names = append(names, strings.TrimSpace(name))
		}
	}

	var updated *models.InvitationGroup
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewGroupRepositoryTx(tx)
		if err := repoTx.ReplaceGuests(ctx, group.ID, req.Event, names); err != nil {
			return err
		}
		if err := repoTx.UpdateRSVPState(ctx, group.ID, req.Event, req.Accept); err != nil {
			return err
		}
		reloaded, err := repoTx.FindByToken(ctx, token)
		if err != nil {
			return err
		}
		updated = reloaded
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("GroupService.SubmitRSVP: transaction failed",
			zap.Uint("group_id", group.ID),
			zap.String("event", string(req.Event)),
			zap.Error(txErr))
		return models.RSVPResponse{}, fmt.Errorf("%w: %v", ErrRSVPFailed, txErr)
	}

	configslog.SLog.Infow("RSVP stored",
		"group_id", group.ID,
		"event", req.Event,
		"accept", req.Accept,
		"guests", len(names))

	out := updated.ToGroup()
	return models.RSVPResponse{
		Success: true,
		Message: fmt.Sprintf("RSVP for %s submitted successfully", req.Event),
		Group:   &out,
	}, nil
}

// CreateGroup validates and stores a new group. The token is generated on insert.
func (s *GroupService) CreateGroup(ctx context.Context, input CreateGroupInput) (*models.InvitationGroup, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGroupInvalidInput, err)
	}

	group := &models.InvitationGroup{
		Name:             strings.TrimSpace(input.Name),
		InvitedToNikkah:  input.InvitedToNikkah,
		InvitedToWedding: input.InvitedToWedding,
		InvitedToHenna:   input.InvitedToHenna,
		MaxGuestsWedding: input.MaxGuestsWedding,
		MaxGuestsHenna:   input.MaxGuestsHenna,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		configslog.Log.Error("GroupService.CreateGroup: insert failed", zap.String("name", input.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGroupCreateFailed, err)
	}
	return group, nil
}

// ListGroups returns every group with its guests.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.InvitationGroup, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGroupLookupFailed, err)
	}
	return groups, nil
}
