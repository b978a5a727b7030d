package repository

import (
	"context"
	"log"
	"strconv"
	"time"

	"taskmanager/internal/model"
	"taskmanager/internal/timeutil"
)

// TaskRepository persists tasks scoped to their owning username. Storage
// errors are logged here and never propagate: reads come back empty and
// writes drop, leaving the service degraded rather than broken. Update and
// Delete silently no-op on unknown ids.
type TaskRepository struct {
	db *Database
}

func NewTaskRepository(db *Database) *TaskRepository {
	return &TaskRepository{db: db}
}

// getOrCreateCategoryID resolves the category name to its Categories row,
// inserting one on first use.
func (r *TaskRepository) getOrCreateCategoryID(ctx context.Context, category *model.Category) (*int64, error) {
	if category == nil {
		return nil, nil
	}

	db, err := r.db.Conn()
	if err != nil {
		return nil, err
	}

	var rows []categoryRow
	if err := db.WithContext(ctx).Where("name = ?", category.Name).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return &rows[0].ID, nil
	}

	row := categoryRow{Name: category.Name}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row.ID, nil
}

// categoryByID loads the category for a stored row, falling back to
// Uncategorized when the reference is missing.
func (r *TaskRepository) categoryByID(ctx context.Context, id *int64) *model.Category {
	uncategorized := &model.Category{Name: "Uncategorized"}
	if id == nil {
		return uncategorized
	}

	db, err := r.db.Conn()
	if err != nil {
		return uncategorized
	}
	var rows []categoryRow
	if err := db.WithContext(ctx).Where("id = ?", *id).Limit(1).Find(&rows).Error; err != nil || len(rows) == 0 {
		return uncategorized
	}
	return &model.Category{ID: int(rows[0].ID), Name: rows[0].Name}
}

// Save inserts the task and writes the storage-generated id back onto it,
// replacing the placeholder id it was constructed with.
func (r *TaskRepository) Save(ctx context.Context, username string, task *model.Task) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: save task: %v", err)
		return
	}

	categoryID, err := r.getOrCreateCategoryID(ctx, task.Category)
	if err != nil {
		log.Printf("repository: save task %q: resolve category: %v", task.Name, err)
		return
	}

	row := taskRow{
		Username:     username,
		Name:         task.Name,
		Description:  task.Description,
		CategoryID:   categoryID,
		Deadline:     formatTimePtr(task.Deadline),
		Priority:     int(task.Priority),
		Completed:    boolToInt(task.Completed),
		CreationDate: timeutil.FormatStorage(task.CreationDate),
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("repository: save task %q: %v", task.Name, err)
		return
	}
	task.ID = strconv.FormatInt(row.ID, 10)
}

// GetAll returns every task owned by the username, empty on storage
// failure.
func (r *TaskRepository) GetAll(ctx context.Context, username string) []*model.Task {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: list tasks: %v", err)
		return nil
	}

	var rows []taskRow
	if err := db.WithContext(ctx).Where("username = ?", username).Order("id ASC").Find(&rows).Error; err != nil {
		log.Printf("repository: list tasks for %q: %v", username, err)
		return nil
	}

	tasks := make([]*model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, r.taskFromRow(ctx, row))
	}
	return tasks
}

// GetByID looks the task up by scanning GetAll; nil when absent.
func (r *TaskRepository) GetByID(ctx context.Context, username, id string) *model.Task {
	for _, task := range r.GetAll(ctx, username) {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// Update rewrites the stored row. A missing id is not an error; nothing
// happens.
func (r *TaskRepository) Update(ctx context.Context, username string, task *model.Task) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: update task: %v", err)
		return
	}
	rowID, ok := parseRowID(task.ID)
	if !ok {
		log.Printf("repository: update task: bad id %q", task.ID)
		return
	}

	categoryID, err := r.getOrCreateCategoryID(ctx, task.Category)
	if err != nil {
		log.Printf("repository: update task %q: resolve category: %v", task.Name, err)
		return
	}

	res := db.WithContext(ctx).Model(&taskRow{}).
		Where("id = ? AND username = ?", rowID, username).
		Updates(map[string]interface{}{
			"name":        task.Name,
			"description": task.Description,
			"category_id": categoryID,
			"deadline":    formatTimePtr(task.Deadline),
			"priority":    int(task.Priority),
			"completed":   boolToInt(task.Completed),
		})
	if res.Error != nil {
		log.Printf("repository: update task %q: %v", task.ID, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		log.Printf("repository: no task with id %q to update", task.ID)
	}
}

// Delete removes the task; reminders go with it via the cascade. A missing
// id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, username, id string) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: delete task: %v", err)
		return
	}
	rowID, ok := parseRowID(id)
	if !ok {
		log.Printf("repository: delete task: bad id %q", id)
		return
	}

	res := db.WithContext(ctx).Where("id = ? AND username = ?", rowID, username).Delete(&taskRow{})
	if res.Error != nil {
		log.Printf("repository: delete task %q: %v", id, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		log.Printf("repository: no task with id %q to delete", id)
	}
}

// TasksInDateRange returns tasks whose deadline falls inside [start, end].
// The storage format sorts lexicographically in time order, so the filter
// runs in SQL.
func (r *TaskRepository) TasksInDateRange(ctx context.Context, username string, start, end time.Time) []*model.Task {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: tasks in range: %v", err)
		return nil
	}

	var rows []taskRow
	if err := db.WithContext(ctx).
		Where("username = ? AND deadline IS NOT NULL AND deadline >= ? AND deadline <= ?",
			username, timeutil.FormatStorage(start), timeutil.FormatStorage(end)).
		Order("deadline ASC").
		Find(&rows).Error; err != nil {
		log.Printf("repository: tasks in range for %q: %v", username, err)
		return nil
	}

	tasks := make([]*model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, r.taskFromRow(ctx, row))
	}
	return tasks
}

func (r *TaskRepository) taskFromRow(ctx context.Context, row taskRow) *model.Task {
	task := model.NewTask(row.Name, row.Description, r.categoryByID(ctx, row.CategoryID))
	task.ID = strconv.FormatInt(row.ID, 10)
	task.Deadline = parseTimePtr(row.Deadline)
	task.Completed = row.Completed == 1

	if p := model.Priority(row.Priority); p.Valid() {
		task.Priority = p
	}
	if created := parseTimePtr(&row.CreationDate); created != nil {
		task.CreationDate = *created
	}
	return task
}
