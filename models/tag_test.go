package models

import (
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagModerateApprove(t *testing.T) {
	tagID := uuid.NewV4()
	adminID := uuid.NewV4()
	tag := &Tag{ID: tagID, Name: "sale", Status: TagUnderReview}

	entry, err := tag.Moderate(ModerationApprove, adminID, "looks fine", time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, TagActive, tag.Status)
	// The log entry links the tag and the acting moderator.
	assert.Equal(t, tagID, entry.TagID)
	assert.Equal(t, adminID, entry.ModeratedBy)
	assert.Equal(t, ModerationApprove, entry.Action)
	assert.Equal(t, "looks fine", entry.Reason)
}

func TestTagModerateRejectSuspends(t *testing.T) {
	tag := &Tag{ID: uuid.NewV4(), Status: TagUnderReview}
	_, err := tag.Moderate(ModerationReject, uuid.NewV4(), "spam", time.Now())
	require.NoError(t, err)
	assert.Equal(t, TagSuspended, tag.Status)
}

func TestTagModerateFlagKeepsStatus(t *testing.T) {
	tag := &Tag{ID: uuid.NewV4(), Status: TagActive}
	entry, err := tag.Moderate(ModerationFlag, uuid.NewV4(), "check later", time.Now())
	require.NoError(t, err)
	assert.Equal(t, TagActive, tag.Status)
	assert.Equal(t, ModerationFlag, entry.Action)
}

func TestTagModerateDeletedTag(t *testing.T) {
	tag := &Tag{ID: uuid.NewV4(), Status: TagActive}
	require.NoError(t, tag.Erase(time.Now()))

	_, err := tag.Moderate(ModerationSuspend, uuid.NewV4(), "", time.Now())
	assert.ErrorIs(t, err, ErrAlreadyDeleted)
}

func TestParseModerationAction(t *testing.T) {
	_, err := ParseModerationAction("celebrate")
	assert.ErrorIs(t, err, ErrValidation)

	action, err := ParseModerationAction("suspend")
	require.NoError(t, err)
	assert.Equal(t, ModerationSuspend, action)
}

func TestModerationEraseSingleUse(t *testing.T) {
	entry := &TagModeration{TagID: uuid.NewV4(), ModeratedBy: uuid.NewV4(), Action: ModerationApprove}
	now := time.Now().UTC()

	require.NoError(t, entry.Erase(now))
	assert.ErrorIs(t, entry.Erase(now), ErrAlreadyDeleted)
}
