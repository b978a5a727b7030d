package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskmanager/internal/repository"
)

type testEnv struct {
	db        *repository.Database
	users     *repository.UserRepository
	tasks     *repository.TaskRepository
	reminders *repository.ReminderRepository
	settings  *repository.SettingsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := repository.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { _ = db.Close() })

	return &testEnv{
		db:        db,
		users:     repository.NewUserRepository(db),
		tasks:     repository.NewTaskRepository(db),
		reminders: repository.NewReminderRepository(db),
		settings:  repository.NewSettingsRepository(db),
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) {
	t.Helper()

	svc := NewUserService(e.users)
	require.True(t, svc.Register(context.Background(), username, "secret", username+"@mail.com"))
}
