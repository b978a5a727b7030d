package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/model"
)

func TestSettingsDefaultsWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	settings := NewSettingsRepository(db)

	got := settings.Get(context.Background(), "ali")
	require.NotNil(t, got)
	assert.True(t, got.EmailEnabled)
	assert.True(t, got.AppNotificationsEnabled)
	assert.Equal(t, 30, got.DefaultReminderMinutes)
}

func TestSettingsSaveIsUpsert(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	settings := NewSettingsRepository(db)
	ctx := context.Background()

	settings.Save(ctx, "ali", &model.NotificationSettings{
		EmailEnabled:            false,
		AppNotificationsEnabled: true,
		DefaultReminderMinutes:  45,
	})

	got := settings.Get(ctx, "ali")
	assert.False(t, got.EmailEnabled)
	assert.Equal(t, 45, got.DefaultReminderMinutes)

	// Saving again replaces the row instead of failing on the key.
	settings.Save(ctx, "ali", &model.NotificationSettings{
		EmailEnabled:            true,
		AppNotificationsEnabled: false,
		DefaultReminderMinutes:  10,
	})

	got = settings.Get(ctx, "ali")
	assert.True(t, got.EmailEnabled)
	assert.False(t, got.AppNotificationsEnabled)
	assert.Equal(t, 10, got.DefaultReminderMinutes)
}
