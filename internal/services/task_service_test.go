package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTaskService_CreateAndList(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	task, err := env.taskService.CreateTask(alice.ID, CreateTaskInput{Title: "  Buy milk  "})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.Equal(t, alice.ID, task.UserID)
	assert.False(t, task.CreatedAt.IsZero())

	aliceTasks, err := env.taskService.ListTasks(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, task.ID, aliceTasks[0].ID)

	bobTasks, err := env.taskService.ListTasks(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobTasks)
}

func TestTaskService_CreateRequiresTitle(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := env.taskService.CreateTask(alice.ID, CreateTaskInput{Title: title})
		assert.ErrorIs(t, err, ErrTitleRequired)
	}
}

func TestTaskService_RequiresIdentity(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.taskService.ListTasks(0)
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, err = env.taskService.CreateTask(0, CreateTaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, err = env.taskService.UpdateTask(0, 1, UpdateTaskInput{})
	assert.ErrorIs(t, err, ErrMissingIdentity)

	assert.ErrorIs(t, env.taskService.DeleteTask(0, 1), ErrMissingIdentity)
}

func TestTaskService_PartialUpdate(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	task, err := env.taskService.CreateTask(alice.ID, CreateTaskInput{Title: "Write report", Description: "quarterly"})
	require.NoError(t, err)
	before, err := env.taskService.GetTask(alice.ID, task.ID)
	require.NoError(t, err)

	updated, err := env.taskService.UpdateTask(alice.ID, task.ID, UpdateTaskInput{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Write report", updated.Title)
	assert.Equal(t, "quarterly", updated.Description)
	assert.True(t, updated.CreatedAt.Equal(before.CreatedAt))

	updated, err = env.taskService.UpdateTask(alice.ID, task.ID, UpdateTaskInput{Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
	assert.True(t, updated.Completed)
}

func TestTaskService_UpdateRejectsBlankTitle(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	task, err := env.taskService.CreateTask(alice.ID, CreateTaskInput{Title: "keep"})
	require.NoError(t, err)

	_, err = env.taskService.UpdateTask(alice.ID, task.ID, UpdateTaskInput{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestTaskService_NonOwnerSeesNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	task, err := env.taskService.CreateTask(alice.ID, CreateTaskInput{Title: "secret"})
	require.NoError(t, err)

	_, err = env.taskService.GetTask(bob.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = env.taskService.UpdateTask(bob.ID, task.ID, UpdateTaskInput{Title: strPtr("hijacked"), Completed: boolPtr(true)})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, env.taskService.DeleteTask(bob.ID, task.ID), ErrTaskNotFound)

	// A task that does not exist at all looks the same
	assert.ErrorIs(t, env.taskService.DeleteTask(bob.ID, 9999), ErrTaskNotFound)

	stored, err := env.taskService.GetTask(alice.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", stored.Title)
	assert.False(t, stored.Completed)
}

func TestTaskService_Delete(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	task, err := env.taskService.CreateTask(alice.ID, CreateTaskInput{Title: "temp"})
	require.NoError(t, err)

	require.NoError(t, env.taskService.DeleteTask(alice.ID, task.ID))
	assert.ErrorIs(t, env.taskService.DeleteTask(alice.ID, task.ID), ErrTaskNotFound)

	tasks, err := env.taskService.ListTasks(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

// vanishingTaskRepo simulates a concurrent delete between fetch and write.
type vanishingTaskRepo struct {
	repository.TaskRepository
}

func (vanishingTaskRepo) UpdateOwned(*models.Task) (int64, error) {
	return 0, nil
}

func TestTaskService_UpdateZeroRowsIsInternalError(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	task, err := env.taskService.CreateTask(alice.ID, CreateTaskInput{Title: "racy"})
	require.NoError(t, err)

	svc := NewTaskService(vanishingTaskRepo{env.taskRepo})
	_, err = svc.UpdateTask(alice.ID, task.ID, UpdateTaskInput{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, ErrTaskUpdateFailed)
}

func TestTaskService_RejectsOverlongTitle(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.register(t, "titles")

	_, err := env.taskService.CreateTask(user.ID, CreateTaskInput{Title: strings.Repeat("a", 256)})
	assert.ErrorIs(t, err, ErrTitleTooLong)

	// Length is counted in characters, not bytes.
	task, err := env.taskService.CreateTask(user.ID, CreateTaskInput{Title: strings.Repeat("é", 255)})
	require.NoError(t, err)

	_, err = env.taskService.UpdateTask(user.ID, task.ID, UpdateTaskInput{Title: strPtr(strings.Repeat("b", 300))})
	assert.ErrorIs(t, err, ErrTitleTooLong)

	stored, err := env.taskService.GetTask(user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 255), stored.Title)
}
