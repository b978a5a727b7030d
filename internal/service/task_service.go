package service

import (
	"context"
	"sort"
	"time"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// SortStrategy produces a new ordering of tasks without mutating storage or
// its input.
type SortStrategy func([]*model.Task) []*model.Task

// ByDeadline sorts soonest deadline first. Tasks without a deadline come
// last; ties keep their original order.
func ByDeadline(tasks []*model.Task) []*model.Task {
	out := make([]*model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		d1, d2 := out[i].Deadline, out[j].Deadline
		switch {
		case d1 == nil:
			return false
		case d2 == nil:
			return true
		default:
			return d1.Before(*d2)
		}
	})
	return out
}

// ByPriority sorts high priority first; ties keep their original order.
func ByPriority(tasks []*model.Task) []*model.Task {
	out := make([]*model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// TaskService wraps task business logic for one logged-in user.
type TaskService struct {
	tasks    *repository.TaskRepository
	username string
}

func NewTaskService(tasks *repository.TaskRepository, username string) *TaskService {
	return &TaskService{tasks: tasks, username: username}
}

// CreateTask constructs a task and immediately persists it. The returned
// task carries its storage-assigned id.
func (s *TaskService) CreateTask(ctx context.Context, name, description string, category *model.Category) *model.Task {
	task := model.NewTask(name, description, category)
	s.tasks.Save(ctx, s.username, task)
	return task
}

// Task returns the task with the given id, nil when absent.
func (s *TaskService) Task(ctx context.Context, id string) *model.Task {
	return s.tasks.GetByID(ctx, s.username, id)
}

// AllTasks returns every task of the user.
func (s *TaskService) AllTasks(ctx context.Context) []*model.Task {
	return s.tasks.GetAll(ctx, s.username)
}

// UpdateTask persists changes made to the task.
func (s *TaskService) UpdateTask(ctx context.Context, task *model.Task) {
	s.tasks.Update(ctx, s.username, task)
}

// DeleteTask removes the task and its reminders.
func (s *TaskService) DeleteTask(ctx context.Context, id string) {
	s.tasks.Delete(ctx, s.username, id)
}

// MarkCompleted completes the task. Unknown ids are ignored.
func (s *TaskService) MarkCompleted(ctx context.Context, id string) {
	task := s.Task(ctx, id)
	if task == nil {
		return
	}
	task.Completed = true
	s.UpdateTask(ctx, task)
}

// TasksByCategory filters tasks by category name.
func (s *TaskService) TasksByCategory(ctx context.Context, category *model.Category) []*model.Task {
	if category == nil {
		return nil
	}
	var out []*model.Task
	for _, task := range s.AllTasks(ctx) {
		if task.Category != nil && task.Category.Name == category.Name {
			out = append(out, task)
		}
	}
	return out
}

// TasksByPriority filters tasks by priority level.
func (s *TaskService) TasksByPriority(ctx context.Context, p model.Priority) []*model.Task {
	var out []*model.Task
	for _, task := range s.AllTasks(ctx) {
		if task.Priority == p {
			out = append(out, task)
		}
	}
	return out
}

// OverdueTasks returns tasks whose deadline has passed uncompleted.
func (s *TaskService) OverdueTasks(ctx context.Context) []*model.Task {
	var out []*model.Task
	for _, task := range s.AllTasks(ctx) {
		if task.IsOverdue() {
			out = append(out, task)
		}
	}
	return out
}

// TasksInDateRange returns tasks with a deadline inside [start, end].
func (s *TaskService) TasksInDateRange(ctx context.Context, start, end time.Time) []*model.Task {
	return s.tasks.TasksInDateRange(ctx, s.username, start, end)
}

// SortTasks applies the strategy to a fresh copy of the user's tasks.
func (s *TaskService) SortTasks(ctx context.Context, strategy SortStrategy) []*model.Task {
	return strategy(s.AllTasks(ctx))
}

// SortedByDeadline returns the user's tasks ordered by deadline.
func (s *TaskService) SortedByDeadline(ctx context.Context) []*model.Task {
	return s.SortTasks(ctx, ByDeadline)
}

// SortedByPriority returns the user's tasks ordered by priority.
func (s *TaskService) SortedByPriority(ctx context.Context) []*model.Task {
	return s.SortTasks(ctx, ByPriority)
}
