package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindOwned finds a task by ID that belongs to userID
func (r *GormTaskRepository) FindOwned(taskID, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner lists the tasks of userID, newest first
func (r *GormTaskRepository) ListByOwner(userID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateOwned writes title, description and completed of an owned task.
// created_at and user_id are never part of the update.
func (r *GormTaskRepository) UpdateOwned(task *models.Task) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Select("title", "description", "completed", "updated_at").
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
		})
	return result.RowsAffected, result.Error
}

// DeleteOwned deletes an owned task in a single conditional statement
func (r *GormTaskRepository) DeleteOwned(taskID, userID uint64) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
