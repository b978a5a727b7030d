package repository

import (
	"context"
	"log"
	"strconv"

	"taskmanager/internal/model"
	"taskmanager/internal/timeutil"
)

// ProjectRepository persists projects and their task links through the
// Project_Tasks join table, scoped to the owning username. It follows the
// task repository's degraded failure mode: log and move on.
type ProjectRepository struct {
	db    *Database
	tasks *TaskRepository
}

func NewProjectRepository(db *Database, tasks *TaskRepository) *ProjectRepository {
	return &ProjectRepository{db: db, tasks: tasks}
}

// Save inserts the project and writes the generated id back onto it.
func (r *ProjectRepository) Save(ctx context.Context, username string, project *model.Project) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: save project: %v", err)
		return
	}

	row := projectRow{
		Username:     username,
		Name:         project.Name,
		Description:  project.Description,
		StartDate:    formatTimePtr(project.StartDate),
		EndDate:      formatTimePtr(project.EndDate),
		CreationDate: timeutil.FormatStorage(project.CreationDate),
		Completed:    boolToInt(project.Completed),
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("repository: save project %q: %v", project.Name, err)
		return
	}
	project.ID = strconv.FormatInt(row.ID, 10)
}

// GetAll returns every project owned by the username.
func (r *ProjectRepository) GetAll(ctx context.Context, username string) []*model.Project {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: list projects: %v", err)
		return nil
	}

	var rows []projectRow
	if err := db.WithContext(ctx).Where("username = ?", username).Order("id ASC").Find(&rows).Error; err != nil {
		log.Printf("repository: list projects for %q: %v", username, err)
		return nil
	}

	projects := make([]*model.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, projectFromRow(row))
	}
	return projects
}

// GetByID returns the project, nil when absent.
func (r *ProjectRepository) GetByID(ctx context.Context, username, id string) *model.Project {
	for _, project := range r.GetAll(ctx, username) {
		if project.ID == id {
			return project
		}
	}
	return nil
}

// Update rewrites the stored row; a missing id is not an error.
func (r *ProjectRepository) Update(ctx context.Context, username string, project *model.Project) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: update project: %v", err)
		return
	}
	rowID, ok := parseRowID(project.ID)
	if !ok {
		log.Printf("repository: update project: bad id %q", project.ID)
		return
	}

	res := db.WithContext(ctx).Model(&projectRow{}).
		Where("id = ? AND username = ?", rowID, username).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"description": project.Description,
			"start_date":  formatTimePtr(project.StartDate),
			"end_date":    formatTimePtr(project.EndDate),
			"completed":   boolToInt(project.Completed),
		})
	if res.Error != nil {
		log.Printf("repository: update project %q: %v", project.ID, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		log.Printf("repository: no project with id %q to update", project.ID)
	}
}

// Delete removes the project; its task links go with it via the cascade.
func (r *ProjectRepository) Delete(ctx context.Context, username, id string) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: delete project: %v", err)
		return
	}
	rowID, ok := parseRowID(id)
	if !ok {
		return
	}

	res := db.WithContext(ctx).Where("id = ? AND username = ?", rowID, username).Delete(&projectRow{})
	if res.Error != nil {
		log.Printf("repository: delete project %q: %v", id, res.Error)
	}
}

// AddTask links a task to the project. Both must belong to the username;
// a duplicate link is ignored.
func (r *ProjectRepository) AddTask(ctx context.Context, username, projectID, taskID string) {
	if r.GetByID(ctx, username, projectID) == nil {
		log.Printf("repository: link task: no project %q for user %q", projectID, username)
		return
	}
	if r.tasks.GetByID(ctx, username, taskID) == nil {
		log.Printf("repository: link task: no task %q for user %q", taskID, username)
		return
	}

	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: link task: %v", err)
		return
	}
	pID, _ := parseRowID(projectID)
	tID, _ := parseRowID(taskID)

	var count int64
	if err := db.WithContext(ctx).Model(&projectTaskRow{}).
		Where("project_id = ? AND task_id = ?", pID, tID).
		Count(&count).Error; err != nil || count > 0 {
		return
	}
	if err := db.WithContext(ctx).Create(&projectTaskRow{ProjectID: pID, TaskID: tID}).Error; err != nil {
		log.Printf("repository: link task %q to project %q: %v", taskID, projectID, err)
	}
}

// RemoveTask unlinks a task from the project.
func (r *ProjectRepository) RemoveTask(ctx context.Context, username, projectID, taskID string) {
	if r.GetByID(ctx, username, projectID) == nil {
		return
	}
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: unlink task: %v", err)
		return
	}
	pID, ok1 := parseRowID(projectID)
	tID, ok2 := parseRowID(taskID)
	if !ok1 || !ok2 {
		return
	}

	res := db.WithContext(ctx).
		Where("project_id = ? AND task_id = ?", pID, tID).
		Delete(&projectTaskRow{})
	if res.Error != nil {
		log.Printf("repository: unlink task %q from project %q: %v", taskID, projectID, res.Error)
	}
}

// TasksForProject returns the user's tasks linked to the project.
func (r *ProjectRepository) TasksForProject(ctx context.Context, username, projectID string) []*model.Task {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: project tasks: %v", err)
		return nil
	}
	pID, ok := parseRowID(projectID)
	if !ok {
		return nil
	}

	var rows []taskRow
	if err := db.WithContext(ctx).Table("Tasks").
		Select("Tasks.*").
		Joins("JOIN Project_Tasks ON Project_Tasks.task_id = Tasks.id").
		Where("Project_Tasks.project_id = ? AND Tasks.username = ?", pID, username).
		Order("Tasks.id ASC").
		Find(&rows).Error; err != nil {
		log.Printf("repository: tasks for project %q: %v", projectID, err)
		return nil
	}

	tasks := make([]*model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, r.tasks.taskFromRow(ctx, row))
	}
	return tasks
}

func projectFromRow(row projectRow) *model.Project {
	project := model.NewProject(row.Name, row.Description)
	project.ID = strconv.FormatInt(row.ID, 10)
	project.StartDate = parseTimePtr(row.StartDate)
	project.EndDate = parseTimePtr(row.EndDate)
	project.Completed = row.Completed == 1
	if created := parseTimePtr(&row.CreationDate); created != nil {
		project.CreationDate = *created
	}
	return project
}
