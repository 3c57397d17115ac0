// Package sqlite stores the planner in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"life-planner/internal/errors"
	"life-planner/internal/repository"
	"life-planner/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store implements repository.Store on SQLite. Each save rewrites all rows
// in one transaction.
type Store struct {
	db     *sql.DB
	mapper *Mapper
	log    zerolog.Logger
}

var _ repository.Store = (*Store)(nil)

// New opens the database at dbPath and applies pending migrations.
func New(ctx context.Context, dbPath string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// SQLite allows a single writer; one connection also keeps :memory:
	// databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &Store{
		db:     db,
		mapper: NewMapper(),
		log:    logger.With().Str("component", "sqlite").Str("path", dbPath).Logger(),
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads every collection. Rows are re-added in stored position order,
// so items with equal times keep their saved order.
func (s *Store) Load(ctx context.Context) (*repository.Snapshot, error) {
	snapshot := repository.NewSnapshot()

	appointments, err := QueryMultiple(ctx, s.db, `
	SELECT id, position, name, description, start_time, hours, minutes
	FROM appointments
	ORDER BY position ASC`, ScanAppointments, "appointments")
	if err != nil {
		return nil, err
	}
	for _, appointment := range s.mapper.Appointment.FromDatabaseSlice(appointments) {
		snapshot.Appointments.Add(appointment)
	}

	tasks, err := QueryMultiple(ctx, s.db, `
	SELECT id, position, name, description, due_time, completed
	FROM tasks
	ORDER BY position ASC`, ScanTasks, "tasks")
	if err != nil {
		return nil, err
	}
	for _, task := range s.mapper.Task.FromDatabaseSlice(tasks) {
		snapshot.Tasks.Add(task)
	}

	trackers, err := QueryMultiple(ctx, s.db, `
	SELECT id, position, name
	FROM habit_trackers
	ORDER BY position ASC`, ScanTrackers, "habit trackers")
	if err != nil {
		return nil, err
	}
	completions, err := QueryMultiple(ctx, s.db, `
	SELECT tracker_id, position, completed_at
	FROM habit_completions
	ORDER BY tracker_id ASC, position ASC`, ScanCompletions, "habit completions")
	if err != nil {
		return nil, err
	}
	for _, tracker := range s.mapper.Tracker.FromDatabaseSlice(trackers, completions) {
		snapshot.Trackers.Add(tracker)
	}

	s.log.Debug().
		Int("appointments", snapshot.Appointments.Len()).
		Int("tasks", snapshot.Tasks.Len()).
		Int("trackers", snapshot.Trackers.Len()).
		Msg("loaded schedule")
	return snapshot, nil
}

// Save replaces the stored collections with the snapshot.
func (s *Store) Save(ctx context.Context, snapshot *repository.Snapshot) error {
	for _, a := range snapshot.Appointments.Items() {
		if a.IsDraft() {
			return errors.NewValidationError("appointment "+a.Name+" has no period", nil).
				WithEntity("appointment")
		}
	}
	for _, t := range snapshot.Tasks.Items() {
		if t.IsDraft() {
			return errors.NewValidationError("task "+t.Name+" has no due", nil).
				WithEntity("task")
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"habit_completions", "habit_trackers", "tasks", "appointments"} {
		if err := Execute(ctx, tx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for i, a := range snapshot.Appointments.Items() {
		row := s.mapper.Appointment.ToDatabase(a, i)
		err := Execute(ctx, tx, `
		INSERT INTO appointments (position, name, description, start_time, hours, minutes)
		VALUES (?, ?, ?, ?, ?, ?)`,
			row.Position, row.Name, row.Description, FormatTimeForDB(row.StartTime), row.Hours, row.Minutes)
		if err != nil {
			return err
		}
	}

	for i, t := range snapshot.Tasks.Items() {
		row := s.mapper.Task.ToDatabase(t, i)
		err := Execute(ctx, tx, `
		INSERT INTO tasks (position, name, description, due_time, completed)
		VALUES (?, ?, ?, ?, ?)`,
			row.Position, row.Name, row.Description, FormatTimeForDB(row.DueTime), row.Completed)
		if err != nil {
			return err
		}
	}

	for i, h := range snapshot.Trackers.All() {
		row, completions := s.mapper.Tracker.ToDatabase(h, i)
		id, err := ExecuteWithLastInsertID(ctx, tx, `
		INSERT INTO habit_trackers (position, name) VALUES (?, ?)`, row.Position, row.Name)
		if err != nil {
			return err
		}
		for _, c := range completions {
			err := Execute(ctx, tx, `
			INSERT INTO habit_completions (tracker_id, position, completed_at) VALUES (?, ?, ?)`,
				id, c.Position, FormatTimeForDB(c.CompletedAt))
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	s.log.Debug().Msg("saved schedule")
	return nil
}
