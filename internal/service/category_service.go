package service

import (
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// CategoryService is a thin facade over the single category registry.
type CategoryService struct {
	registry *repository.CategoryRegistry
}

func NewCategoryService(registry *repository.CategoryRegistry) *CategoryService {
	return &CategoryService{registry: registry}
}

// All returns every category.
func (s *CategoryService) All() []model.Category {
	return s.registry.All()
}

// Add stores a category; duplicate names return the existing one.
func (s *CategoryService) Add(name, description, color string) model.Category {
	return s.registry.Add(name, description, color)
}

// ByID returns the category with the given id, nil when absent.
func (s *CategoryService) ByID(id int) *model.Category {
	return s.registry.ByID(id)
}

// ByName returns the category with the given name, nil when absent.
func (s *CategoryService) ByName(name string) *model.Category {
	return s.registry.ByName(name)
}

// Update renames a category; false on unknown id or name collision.
func (s *CategoryService) Update(id int, name, description, color string) bool {
	return s.registry.Update(id, name, description, color)
}

// Delete removes a category; false for the seeded defaults.
func (s *CategoryService) Delete(id int) bool {
	return s.registry.Delete(id)
}
