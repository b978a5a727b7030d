package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// ErrNoDeadline is returned when a deadline-relative reminder is requested
// for a task without a deadline.
var ErrNoDeadline = errors.New("task has no deadline")

// ReminderObserver receives each due reminder found by a sweep, together
// with the id of its owning task.
type ReminderObserver interface {
	OnReminderDue(reminder *model.Reminder, taskID string)
}

// ReminderService is the reminder engine for one user: it creates
// reminders, detects due ones and notifies observers. Observers form an
// unordered set; registering one twice is a no-op. Delivery is synchronous
// on the sweeping goroutine, so observers must not start sweeps of their
// own.
type ReminderService struct {
	reminders *repository.ReminderRepository
	settings  *repository.SettingsRepository
	username  string

	mu        sync.Mutex
	observers map[ReminderObserver]struct{}
}

func NewReminderService(reminders *repository.ReminderRepository, settings *repository.SettingsRepository, username string) *ReminderService {
	return &ReminderService{
		reminders: reminders,
		settings:  settings,
		username:  username,
		observers: make(map[ReminderObserver]struct{}),
	}
}

// AddObserver registers an observer for due notifications.
func (s *ReminderService) AddObserver(o ReminderObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers[o] = struct{}{}
}

// RemoveObserver unregisters an observer.
func (s *ReminderService) RemoveObserver(o ReminderObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, o)
}

func (s *ReminderService) notify(reminder *model.Reminder) {
	s.mu.Lock()
	observers := make([]ReminderObserver, 0, len(s.observers))
	for o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.OnReminderDue(reminder, reminder.TaskID)
	}
}

// CreateReminder persists a reminder for the task at the given time. A zero
// time is a programming error.
func (s *ReminderService) CreateReminder(ctx context.Context, taskID string, at time.Time, message string) *model.Reminder {
	if at.IsZero() {
		panic("service: reminder time must be set")
	}
	reminder := model.NewReminder(taskID, at)
	reminder.Message = message
	s.reminders.Save(ctx, s.username, reminder)
	return reminder
}

// CreateReminderBeforeDeadline schedules a reminder the given number of
// minutes ahead of the task's deadline. When minutesBefore is not positive
// the user's default lead time applies. Tasks without a deadline are
// rejected.
func (s *ReminderService) CreateReminderBeforeDeadline(ctx context.Context, task *model.Task, minutesBefore int) (*model.Reminder, error) {
	if task == nil {
		panic("service: reminder task must not be nil")
	}
	if task.Deadline == nil {
		return nil, ErrNoDeadline
	}
	if minutesBefore <= 0 {
		minutesBefore = s.settings.Get(ctx, s.username).DefaultReminderMinutes
	}

	at := task.Deadline.Add(-time.Duration(minutesBefore) * time.Minute)
	return s.CreateReminder(ctx, task.ID, at, ""), nil
}

// AllReminders returns every reminder of the user.
func (s *ReminderService) AllReminders(ctx context.Context) []model.Reminder {
	return s.reminders.GetAll(ctx, s.username)
}

// RemindersForTask returns the reminders attached to one task.
func (s *ReminderService) RemindersForTask(ctx context.Context, taskID string) []model.Reminder {
	return s.reminders.ForTask(ctx, s.username, taskID)
}

// DueReminders returns reminders whose time has passed and which have not
// been triggered. Being due is a function of the current clock only;
// nothing is persisted.
func (s *ReminderService) DueReminders(ctx context.Context) []model.Reminder {
	var due []model.Reminder
	for _, reminder := range s.AllReminders(ctx) {
		if reminder.IsDue() {
			due = append(due, reminder)
		}
	}
	return due
}

// MarkTriggered flips the reminder to its terminal triggered state and
// persists it. A triggered reminder is never due again.
func (s *ReminderService) MarkTriggered(ctx context.Context, reminder *model.Reminder) {
	reminder.Triggered = true
	s.reminders.Update(ctx, s.username, reminder)
}

// DeleteReminder removes a reminder.
func (s *ReminderService) DeleteReminder(ctx context.Context, id string) {
	s.reminders.Delete(ctx, s.username, id)
}

// Sweep finds every due reminder, marks each triggered and then notifies
// all observers. Marking happens before notification, so a reminder is
// delivered at most once across sweeps. Returns the number of reminders
// delivered.
func (s *ReminderService) Sweep(ctx context.Context) int {
	due := s.DueReminders(ctx)
	for i := range due {
		s.MarkTriggered(ctx, &due[i])
		s.notify(&due[i])
	}
	return len(due)
}
