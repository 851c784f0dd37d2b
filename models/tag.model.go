package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type TagStatus string

const (
	TagUnderReview TagStatus = "under_review"
	TagActive      TagStatus = "active"
	TagSuspended   TagStatus = "suspended"
)

type ModerationAction string

const (
	ModerationApprove ModerationAction = "approve"
	ModerationReject  ModerationAction = "reject"
	ModerationFlag    ModerationAction = "flag"
	ModerationSuspend ModerationAction = "suspend"
)

func ParseModerationAction(s string) (ModerationAction, error) {
	switch ModerationAction(s) {
	case ModerationApprove, ModerationReject, ModerationFlag, ModerationSuspend:
		return ModerationAction(s), nil
	}
	return "", ErrValidation
}

type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Status    TagStatus `gorm:"type:varchar(20);not null;default:'under_review'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	SoftDeletable
	Moderations []TagModeration `gorm:"foreignKey:TagID"`
}

// Moderate applies an admin action to the tag status and returns the
// immutable log entry to append. flag records a log row without moving the
// status.
func (t *Tag) Moderate(action ModerationAction, moderatedBy uuid.UUID, reason string, now time.Time) (*TagModeration, error) {
	if t.IsDeleted() {
		return nil, ErrAlreadyDeleted
	}
	switch action {
	case ModerationApprove:
		t.Status = TagActive
	case ModerationReject, ModerationSuspend:
		t.Status = TagSuspended
	case ModerationFlag:
		// Status untouched; the log row is the whole point.
	default:
		return nil, ErrValidation
	}
	return &TagModeration{
		TagID:       t.ID,
		ModeratedBy: moderatedBy,
		Action:      action,
		Reason:      reason,
		CreatedAt:   now,
	}, nil
}

// TagModeration is an append-only audit row. It is never updated; admins may
// soft-delete it once.
type TagModeration struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	TagID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	ModeratedBy uuid.UUID        `gorm:"type:uuid;not null;index"`
	Action      ModerationAction `gorm:"type:varchar(20);not null"`
	Reason      string           `gorm:"type:text"`
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
	SoftDeletable
}
