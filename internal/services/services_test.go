package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	tokens      *auth.TokenManager
	authService *AuthService
	taskService *TaskService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return serviceTestEnv{
		db:          db,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		tokens:      tokens,
		authService: NewAuthService(userRepo, tokens, bcrypt.MinCost),
		taskService: NewTaskService(taskRepo),
	}
}

func (env serviceTestEnv) register(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.authService.Register(RegisterInput{
		Username: username,
		Password: "pw123",
		Email:    username + "@x.com",
		FullName: username + " Test",
	})
	require.NoError(t, err)
	return user
}
