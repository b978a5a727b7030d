package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskmanager/internal/model"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()

	db := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *Database, username string) {
	t.Helper()

	users := NewUserRepository(db)
	require.NoError(t, users.Save(context.Background(), model.NewUser(username, "secret", username+"@mail.com")))
}

func seedTask(t *testing.T, db *Database, username, name string) *model.Task {
	t.Helper()

	task := model.NewTask(name, "", &model.Category{Name: "Work"})
	NewTaskRepository(db).Save(context.Background(), username, task)
	require.NotEmpty(t, task.ID)
	return task
}

func pastTime(d time.Duration) time.Time {
	return time.Now().Add(-d).Truncate(time.Second)
}
