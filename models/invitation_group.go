package models

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TokenBytes is the entropy of an invitation token. base64url without padding
// turns 8 bytes into an 11 character token.
const TokenBytes = 8

// InvitationGroup is the persisted form of a Group, addressed by its token.
type InvitationGroup struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null"`
	Token string `gorm:"type:varchar(32);uniqueIndex;not null"`

	InvitedToNikkah  bool `gorm:"not null"`
	InvitedToWedding bool `gorm:"not null"`
	InvitedToHenna   bool `gorm:"not null"`

	MaxGuestsWedding int `gorm:"not null"`
	MaxGuestsHenna   int `gorm:"not null"`

	HasAcceptedWedding bool `gorm:"default:false"`
	HasAcceptedHenna   bool `gorm:"default:false"`
	HasRSVPedWedding   bool `gorm:"column:has_rsvped_wedding;default:false"`
	HasRSVPedHenna     bool `gorm:"column:has_rsvped_henna;default:false"`

	WeddingGuests []WeddingGuest `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	HennaGuests   []HennaGuest   `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (InvitationGroup) TableName() string { return "groups" }

// WeddingGuest is a guest of the Nikkah/Reception.
type WeddingGuest struct {
	ID        uint      `gorm:"primarykey"`
	GroupID   uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

// HennaGuest is a guest of the Henna night.
type HennaGuest struct {
	ID        uint      `gorm:"primarykey"`
	GroupID   uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

// BeforeCreate assigns a random token when none was set.
func (g *InvitationGroup) BeforeCreate(tx *gorm.DB) error {
	if g.Token != "" {
		return nil
	}
	token, err := GenerateToken()
	if err != nil {
		return err
	}
	g.Token = token
	return nil
}

// GenerateToken returns a URL-safe random invitation token.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token generation failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ToGroup converts the record to its API shape. Guest lists are never nil so
// they serialize as [].
func (g *InvitationGroup) ToGroup() Group {
	out := Group{
		ID:                 int64(g.ID),
		Name:               g.Name,
		InvitedToNikkah:    g.InvitedToNikkah,
		InvitedToWedding:   g.InvitedToWedding,
		InvitedToHenna:     g.InvitedToHenna,
		MaxGuestsWedding:   g.MaxGuestsWedding,
		MaxGuestsHenna:     g.MaxGuestsHenna,
		HasAcceptedWedding: g.HasAcceptedWedding,
		HasAcceptedHenna:   g.HasAcceptedHenna,
		HasRSVPedWedding:   g.HasRSVPedWedding,
		HasRSVPedHenna:     g.HasRSVPedHenna,
		WeddingGuests:      make([]Guest, 0, len(g.WeddingGuests)),
		HennaGuests:        make([]Guest, 0, len(g.HennaGuests)),
	}
	for _, wg := range g.WeddingGuests {
		out.WeddingGuests = append(out.WeddingGuests, Guest{
			ID: int64(wg.ID), GroupID: int64(wg.GroupID), Name: wg.Name, CreatedAt: formatTimestamp(wg.CreatedAt),
		})
	}
	for _, hg := range g.HennaGuests {
		out.HennaGuests = append(out.HennaGuests, Guest{
			ID: int64(hg.ID), GroupID: int64(hg.GroupID), Name: hg.Name, CreatedAt: formatTimestamp(hg.CreatedAt),
		})
	}
	return out
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
