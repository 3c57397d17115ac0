package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-planner/internal/domain"
	apperrors "life-planner/internal/errors"
	"life-planner/internal/repository"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.June, day, hour, minute, 0, 0, time.Local)
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "lp.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoad_EmptyDatabase(t *testing.T) {
	store := setupTestStore(t)

	snapshot, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Appointments.Len())
	assert.Equal(t, 0, snapshot.Tasks.Len())
	assert.Equal(t, 0, snapshot.Trackers.Len())
}

func TestSaveAndLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	snapshot := repository.NewSnapshot()
	snapshot.Appointments.Add(domain.NewAppointment("Dentist", "checkup", at(12, 14, 0), 1, 75))
	snapshot.Appointments.Add(domain.NewAppointment("Standup", "", at(12, 9, 0), 0, 15))
	snapshot.Appointments.Add(domain.NewAppointment("Sync", "", at(12, 9, 0), 0, 30))
	done := domain.NewTask("Taxes", "file online", at(15, 17, 0))
	done.ToggleCompletion()
	snapshot.Tasks.Add(done)
	snapshot.Tasks.Add(domain.NewTask("Laundry", "", at(12, 20, 0)))
	run := domain.NewHabitTracker("Run")
	run.AddCompletion(at(12, 7, 0))
	run.AddCompletion(at(11, 7, 0))
	snapshot.Trackers.Add(run)
	snapshot.Trackers.Add(domain.NewHabitTracker("Read"))

	require.NoError(t, store.Save(ctx, snapshot))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, 3, loaded.Appointments.Len())
	assert.Equal(t, "Standup", loaded.Appointments.Get(0).Name, "equal starts keep saved order")
	assert.Equal(t, "Sync", loaded.Appointments.Get(1).Name)
	dentist := loaded.Appointments.Get(2)
	assert.Equal(t, "checkup", dentist.Description)
	period, ok := dentist.Period()
	require.True(t, ok)
	assert.Equal(t, 1, period.Hours())
	assert.Equal(t, 75, period.Minutes())
	assert.True(t, period.End().Equal(at(12, 16, 15)))

	require.Equal(t, 2, loaded.Tasks.Len())
	assert.Equal(t, "Laundry", loaded.Tasks.Get(0).Name)
	assert.False(t, loaded.Tasks.Get(0).IsComplete())
	assert.True(t, loaded.Tasks.Get(1).IsComplete())

	require.Equal(t, 2, loaded.Trackers.Len())
	loadedRun := loaded.Trackers.Get(0)
	assert.Equal(t, "Run", loadedRun.Name())
	last, ok := loadedRun.LastCompletion()
	require.True(t, ok)
	assert.True(t, last.Equal(at(11, 7, 0)), "completions keep insertion order")
	assert.Equal(t, 0, loaded.Trackers.Get(1).Len())
}

func TestSave_ReplacesEverything(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := repository.NewSnapshot()
	first.Tasks.Add(domain.NewTask("old", "", at(12, 9, 0)))
	tracker := domain.NewHabitTracker("old habit")
	tracker.AddCompletion(at(12, 9, 0))
	first.Trackers.Add(tracker)
	require.NoError(t, store.Save(ctx, first))

	second := repository.NewSnapshot()
	second.Tasks.Add(domain.NewTask("new", "", at(13, 9, 0)))
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Tasks.Len())
	assert.Equal(t, "new", loaded.Tasks.Get(0).Name)
	assert.Equal(t, 0, loaded.Trackers.Len())

	var completions int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM habit_completions").Scan(&completions))
	assert.Equal(t, 0, completions)
}

func TestSave_RejectsDraftsWithoutWriting(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	kept := repository.NewSnapshot()
	kept.Tasks.Add(domain.NewTask("kept", "", at(12, 9, 0)))
	require.NoError(t, store.Save(ctx, kept))

	bad := repository.NewSnapshot()
	bad.Appointments.Add(domain.NewDraftAppointment())
	err := store.Save(ctx, bad)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Tasks.Len())
}

func TestLoad_MalformedRow(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.db.Exec(`INSERT INTO tasks (position, name, description, due_time, completed) VALUES (0, 'a', '', 'soon', FALSE)`)
	require.NoError(t, err)

	_, err = store.Load(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeMalformedData), "got %v", err)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp.db")
	ctx := context.Background()

	store, err := New(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	snapshot := repository.NewSnapshot()
	snapshot.Appointments.Add(domain.NewAppointment("Review", "", at(12, 13, 0), 2, 0))
	require.NoError(t, store.Save(ctx, snapshot))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Appointments.Len())
	assert.True(t, loaded.Appointments.Get(0).Start().Equal(at(12, 13, 0)))
}
