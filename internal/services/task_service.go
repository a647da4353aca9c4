package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMissingIdentity  = errors.New("authenticated user is required")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("task title is required")
	ErrTitleTooLong     = errors.New("task title must be at most 255 characters")
	ErrTaskUpdateFailed = errors.New("failed to update task")
)

// TaskService handles task business logic. Every operation is scoped to the
// calling user; tasks of other users behave as if they did not exist.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput represents input for updating a task.
// Nil fields keep their stored values.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// ListTasks returns the tasks owned by userID, newest first
func (s *TaskService) ListTasks(userID uint64) ([]models.Task, error) {
	if userID == 0 {
		return nil, ErrMissingIdentity
	}

	tasks, err := s.taskRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task owned by userID
func (s *TaskService) GetTask(userID, taskID uint64) (*models.Task, error) {
	if userID == 0 {
		return nil, ErrMissingIdentity
	}

	return s.findOwned(userID, taskID)
}

// CreateTask creates a new, not yet completed task owned by userID
func (s *TaskService) CreateTask(userID uint64, input CreateTaskInput) (*models.Task, error) {
	if userID == 0 {
		return nil, ErrMissingIdentity
	}

	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Completed:   false,
		UserID:      userID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask merges input into a task owned by userID
func (s *TaskService) UpdateTask(userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if userID == 0 {
		return nil, ErrMissingIdentity
	}

	task, err := s.findOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := normalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	affected, err := s.taskRepo.UpdateOwned(task)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	// The row was there a moment ago: a concurrent delete won the race.
	if affected == 0 {
		return nil, ErrTaskUpdateFailed
	}

	return s.findOwned(userID, taskID)
}

// DeleteTask deletes a task owned by userID
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	if userID == 0 {
		return ErrMissingIdentity
	}

	affected, err := s.taskRepo.DeleteOwned(taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (s *TaskService) findOwned(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// maxTitleLength matches the varchar(255) title column.
const maxTitleLength = 255

func normalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
