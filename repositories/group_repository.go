package repositories

import (
	"context"
	"errors"
	"fmt"

	"invite.link/configs/configsdatabase"
	"invite.link/configs/configslog"
	"invite.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("record not found")

type txKey struct{}

// ContextWithTx stores a transaction so repositories created without one
// still run inside it.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// IGroupRepository covers the invitation groups and their guest lists.
type IGroupRepository interface {
	Create(ctx context.Context, group *models.InvitationGroup) error
	FindByToken(ctx context.Context, token string) (*models.InvitationGroup, error)
	FindByName(ctx context.Context, name string) (*models.InvitationGroup, error)
	FindAll(ctx context.Context) ([]models.InvitationGroup, error)
	ReplaceGuests(ctx context.Context, groupID uint, event models.Event, names []string) error
	UpdateRSVPState(ctx context.Context, groupID uint, event models.Event, accepted bool) error
}

// GroupRepository implements IGroupRepository with gorm.
type GroupRepository struct {
	db *gorm.DB
}

var _ IGroupRepository = (*GroupRepository)(nil)

// NewGroupRepository uses the shared database connection.
func NewGroupRepository() IGroupRepository {
	return &GroupRepository{db: configsdatabase.GetDB()}
}

// NewGroupRepositoryTx binds the repository to a transaction.
func NewGroupRepositoryTx(tx *gorm.DB) IGroupRepository {
	return &GroupRepository{db: tx}
}

func (r *GroupRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *GroupRepository) withGuests(ctx context.Context) *gorm.DB {
	return r.getDB(ctx).
		Preload("WeddingGuests", orderByID).
		Preload("HennaGuests", orderByID)
}

// Create inserts a group. The token is generated by the model hook when empty.
func (r *GroupRepository) Create(ctx context.Context, group *models.InvitationGroup) error {
	if group == nil || group.Name == "" {
		return errors.New("group name is required")
	}
	return r.getDB(ctx).Create(group).Error
}

// FindByToken loads a group with both guest lists.
func (r *GroupRepository) FindByToken(ctx context.Context, token string) (*models.InvitationGroup, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var group models.InvitationGroup
	err := r.withGuests(ctx).Where("token = ?", token).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GroupRepository.FindByToken: DB error", zap.Error(err))
		return nil, err
	}
	return &group, nil
}

// FindByName loads the first group with this exact name.
func (r *GroupRepository) FindByName(ctx context.Context, name string) (*models.InvitationGroup, error) {
	var group models.InvitationGroup
	err := r.getDB(ctx).Where("name = ?", name).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GroupRepository.FindByName: DB error", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &group, nil
}

// FindAll lists every group in creation order.
func (r *GroupRepository) FindAll(ctx context.Context) ([]models.InvitationGroup, error) {
	var groups []models.InvitationGroup
	if err := r.withGuests(ctx).Order("id ASC").Find(&groups).Error; err != nil {
		configslog.Log.Error("GroupRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return groups, nil
}

// ReplaceGuests deletes the event's guest list of a group and inserts names.
func (r *GroupRepository) ReplaceGuests(ctx context.Context, groupID uint, event models.Event, names []string) error {
	db := r.getDB(ctx)
	switch event {
	case models.EventWedding:
		if err := db.Where("group_id = ?", groupID).Delete(&models.WeddingGuest{}).Error; err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}
		guests := make([]models.WeddingGuest, 0, len(names))
		for _, name := range names {
			guests = append(guests, models.WeddingGuest{GroupID: groupID, Name: name})
		}
		return db.Create(&guests).Error
	case models.EventHenna:
		if err := db.Where("group_id = ?", groupID).Delete(&models.HennaGuest{}).Error; err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}
		guests := make([]models.HennaGuest, 0, len(names))
		for _, name := range names {
			guests = append(guests, models.HennaGuest{GroupID: groupID, Name: name})
		}
		return db.Create(&guests).Error
	}
	return fmt.Errorf("unknown event %q", event)
}

// UpdateRSVPState records the answer of a group for one event.
func (r *GroupRepository) UpdateRSVPState(ctx context.Context, groupID uint, event models.Event, accepted bool) error {
	var updates map[string]interface{}
	switch event {
	case models.EventWedding:
		updates = map[string]interface{}{"has_accepted_wedding": accepted, "has_rsvped_wedding": true}
	case models.EventHenna:
		updates = map[string]interface{}{"has_accepted_henna": accepted, "has_rsvped_henna": true}
	default:
		return fmt.Errorf("unknown event %q", event)
	}

	result := r.getDB(ctx).Model(&models.InvitationGroup{}).Where("id = ?", groupID).Updates(updates)
	if result.Error != nil {
		configslog.Log.Error("GroupRepository.UpdateRSVPState: DB error",
			zap.Uint("group_id", groupID), zap.String("event", string(event)), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
