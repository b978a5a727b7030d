package repository

import (
	"strings"
	"sync"

	"taskmanager/internal/model"
)

// defaultCategoryCount is how many categories are seeded at construction.
// Seeded categories can never be deleted.
const defaultCategoryCount = 5

// CategoryRegistry is the process-wide category store. It lives in memory
// for the whole process; construct one at startup and pass it to whoever
// needs it. Names are unique case-insensitively, first write wins.
type CategoryRegistry struct {
	mu     sync.Mutex
	nextID int
	items  []model.Category
}

// NewCategoryRegistry returns a registry seeded with the five default
// categories, ids 1 through 5.
func NewCategoryRegistry() *CategoryRegistry {
	r := &CategoryRegistry{nextID: 1}
	r.Add("Work", "Work related tasks", "#FF5733")
	r.Add("Personal", "Personal tasks", "#33FF57")
	r.Add("Study", "Study related tasks", "#3357FF")
	r.Add("Health", "Health and fitness", "#FF33A8")
	r.Add("Other", "Other tasks", "#33FFF5")
	return r
}

// Add stores a new category and returns it. When the name already exists
// (case-insensitive), the existing category is returned unchanged.
func (r *CategoryRegistry) Add(name, description, color string) model.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexByName(name); i >= 0 {
		return r.items[i]
	}

	category := model.Category{
		ID:          r.nextID,
		Name:        name,
		Description: description,
		Color:       color,
	}
	r.nextID++
	r.items = append(r.items, category)
	return category
}

// All returns a copy of every category in insertion order.
func (r *CategoryRegistry) All() []model.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Category, len(r.items))
	copy(out, r.items)
	return out
}

// ByID returns a copy of the category with the given id, nil when absent.
func (r *CategoryRegistry) ByID(id int) *model.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.items {
		if c.ID == id {
			c := c
			return &c
		}
	}
	return nil
}

// ByName returns a copy of the category with the given name, matched
// case-insensitively, nil when absent.
func (r *CategoryRegistry) ByName(name string) *model.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexByName(name); i >= 0 {
		c := r.items[i]
		return &c
	}
	return nil
}

// Update renames the category. It fails when the id is unknown or when the
// new name collides case-insensitively with a different category, leaving
// the original untouched.
func (r *CategoryRegistry) Update(id int, name, description, color string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := -1
	for i := range r.items {
		if r.items[i].ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		return false
	}

	for i := range r.items {
		if i != target && strings.EqualFold(r.items[i].Name, name) {
			return false
		}
	}

	r.items[target].Name = name
	r.items[target].Description = description
	r.items[target].Color = color
	return true
}

// Delete removes the category. Seeded defaults (ids 1 through 5) and
// unknown ids are refused.
func (r *CategoryRegistry) Delete(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			if id <= defaultCategoryCount {
				return false
			}
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// indexByName must be called with the lock held.
func (r *CategoryRegistry) indexByName(name string) int {
	for i := range r.items {
		if strings.EqualFold(r.items[i].Name, name) {
			return i
		}
	}
	return -1
}
