package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is a named group of tasks with an optional date range. Like a
// task, its placeholder id is replaced by the repository on insert.
type Project struct {
	ID           string
	Name         string
	Description  string
	CreationDate time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	Completed    bool

	tasks []*Task
}

// NewProject creates an empty project.
func NewProject(name, description string) *Project {
	return &Project{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		CreationDate: time.Now(),
	}
}

// AddTask links a task to the project. A nil task is a programming error.
func (p *Project) AddTask(task *Task) {
	if task == nil {
		panic("model: project task must not be nil")
	}
	p.tasks = append(p.tasks, task)
}

// RemoveTask unlinks the task with the given id and reports whether it was
// present.
func (p *Project) RemoveTask(id string) bool {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Tasks returns a copy of the linked task list.
func (p *Project) Tasks() []*Task {
	out := make([]*Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// CompletionPercentage is the share of linked tasks that are completed,
// 0 for an empty project.
func (p *Project) CompletionPercentage() int {
	if len(p.tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range p.tasks {
		if t.Completed {
			done++
		}
	}
	return done * 100 / len(p.tasks)
}
