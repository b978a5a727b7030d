package model

// Category groups tasks by area (work, health, study, etc.). Categories are
// shared across tasks by reference; ids are assigned by the registry.
type Category struct {
	ID          int
	Name        string
	Description string
	Color       string // hex, e.g. "#FF5733"
}
