package repository

import (
	"errors"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

var (
	// ErrDuplicateUser is returned when an insert violates the username or email unique index.
	ErrDuplicateUser = errors.New("user repository: duplicate username or email")
)

// TaskRepository defines the interface for task data access.
// Every method is scoped to the owning user.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindOwned finds a task by ID that belongs to userID
	FindOwned(taskID, userID uint64) (*models.Task, error)

	// ListByOwner lists the tasks of userID, newest first
	ListByOwner(userID uint64) ([]models.Task, error)

	// UpdateOwned writes title, description and completed of an owned task
	// and reports the number of affected rows
	UpdateOwned(task *models.Task) (int64, error)

	// DeleteOwned deletes an owned task and reports the number of affected rows
	DeleteOwned(taskID, userID uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
