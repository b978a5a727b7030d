package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"taskmanager/internal/model"
)

// ErrUserNotFound signals an update or delete against a username that has
// no stored row. Unlike tasks, missing users fail loudly; callers depend on
// the distinction.
var ErrUserNotFound = errors.New("user not found")

// UserRepository persists users keyed by username. Write-path storage
// errors propagate to the caller so uniqueness violations surface; reads
// degrade to empty results like the rest of the store.
type UserRepository struct {
	db *Database
}

func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts the user, or transparently updates the existing row when the
// username is already taken.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	db, err := r.db.Conn()
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	if r.Exists(ctx, user.Username) {
		return r.Update(ctx, user)
	}

	row := userRow{Username: user.Username, Password: user.Password, Email: user.Email}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save user %q: %w", user.Username, err)
	}
	return nil
}

// GetByID returns the user with the given username, or nil when absent or
// when the store is unavailable.
func (r *UserRepository) GetByID(ctx context.Context, username string) *model.User {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: get user: %v", err)
		return nil
	}

	var rows []userRow
	if err := db.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&rows).Error; err != nil {
		log.Printf("repository: get user %q: %v", username, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	return &model.User{Username: rows[0].Username, Password: rows[0].Password, Email: rows[0].Email}
}

// GetAll returns every stored user, empty when the store is unavailable.
func (r *UserRepository) GetAll(ctx context.Context) []model.User {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: list users: %v", err)
		return nil
	}

	var rows []userRow
	if err := db.WithContext(ctx).Order("username ASC").Find(&rows).Error; err != nil {
		log.Printf("repository: list users: %v", err)
		return nil
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, model.User{Username: row.Username, Password: row.Password, Email: row.Email})
	}
	return users
}

// Update rewrites the stored row. Returns ErrUserNotFound when no row
// exists for the username.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	db, err := r.db.Conn()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	res := db.WithContext(ctx).Model(&userRow{}).Where("username = ?", user.Username).
		Updates(map[string]interface{}{
			"password": user.Password,
			"email":    user.Email,
		})
	if res.Error != nil {
		return fmt.Errorf("update user %q: %w", user.Username, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update user %q: %w", user.Username, ErrUserNotFound)
	}
	return nil
}

// Delete removes the user row; dependent tasks, projects and settings go
// with it via the schema cascades. Returns ErrUserNotFound when absent.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	db, err := r.db.Conn()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	res := db.WithContext(ctx).Where("username = ?", username).Delete(&userRow{})
	if res.Error != nil {
		return fmt.Errorf("delete user %q: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete user %q: %w", username, ErrUserNotFound)
	}
	return nil
}

// Exists reports whether a row exists for the username.
func (r *UserRepository) Exists(ctx context.Context, username string) bool {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: check user: %v", err)
		return false
	}

	var count int64
	if err := db.WithContext(ctx).Model(&userRow{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Printf("repository: check user %q: %v", username, err)
		return false
	}
	return count > 0
}

// Authenticate returns the user when the username exists and the plain-text
// password matches, nil otherwise.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) *model.User {
	user := r.GetByID(ctx, username)
	if user == nil || user.Password != password {
		return nil
	}
	return user
}
