package models

import "time"

// SoftDeletable is embedded by every audit-preserving entity. Deleting marks
// the row instead of erasing it; a repeated delete on the same row is an
// error, never a silent success.
type SoftDeletable struct {
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// Erase stamps the deletion time exactly once.
func (s *SoftDeletable) Erase(now time.Time) error {
	if s.DeletedAt != nil {
		return ErrAlreadyDeleted
	}
	t := now
	s.DeletedAt = &t
	return nil
}

func (s *SoftDeletable) IsDeleted() bool {
	return s.DeletedAt != nil
}
