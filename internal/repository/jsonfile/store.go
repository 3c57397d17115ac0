// Package jsonfile stores the planner as a single JSON document in the
// "saved schedule" format.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"life-planner/internal/domain"
	"life-planner/internal/errors"
	"life-planner/internal/repository"
)

const (
	rootKey = "saved schedule"
	indent  = "    "
)

// Store reads and writes a snapshot to one JSON file.
type Store struct {
	path    string
	dirPerm fs.FileMode
	log     zerolog.Logger
}

var _ repository.Store = (*Store)(nil)

// New creates a store for the file at path. The parent directory is created
// with dirPerm on the first save.
func New(path string, dirPerm fs.FileMode, logger zerolog.Logger) *Store {
	return &Store{
		path:    path,
		dirPerm: dirPerm,
		log:     logger.With().Str("component", "jsonfile").Str("path", path).Logger(),
	}
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved schedule. A missing file yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (*repository.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Msg("no saved schedule, starting empty")
		return repository.NewSnapshot(), nil
	}
	if err != nil {
		return nil, errors.NewStorageError("read saved schedule", err)
	}

	snapshot, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Int("appointments", snapshot.Appointments.Len()).
		Int("tasks", snapshot.Tasks.Len()).
		Int("trackers", snapshot.Trackers.Len()).
		Msg("loaded saved schedule")
	return snapshot, nil
}

// Save writes the whole snapshot, replacing the previous file contents.
func (s *Store) Save(ctx context.Context, snapshot *repository.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(snapshot)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), s.dirPerm); err != nil {
		return errors.NewStorageError("create data directory", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.NewStorageError("write saved schedule", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.NewStorageError("replace saved schedule", err)
	}

	s.log.Debug().Int("bytes", len(data)).Msg("saved schedule")
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *Store) Close() error {
	return nil
}

// Encode renders a snapshot as an indented saved schedule document.
func Encode(snapshot *repository.Snapshot) ([]byte, error) {
	doc := map[string][]json.Marshaler{
		rootKey: {snapshot.Appointments, snapshot.Tasks, snapshot.Trackers},
	}
	data, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.NewStorageError("encode saved schedule", err)
	}
	return data, nil
}

// Decode parses a saved schedule document. The three sections are read by
// position: appointments, tasks, then habit trackers. Any missing key or
// wrongly typed value fails the whole decode.
func Decode(data []byte) (*repository.Snapshot, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformedDataError("saved schedule", "invalid JSON", err)
	}
	raw, ok := doc[rootKey]
	if !ok {
		return nil, errors.NewMalformedDataError("saved schedule", "missing field "+rootKey, nil)
	}

	var sections []json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, errors.NewMalformedDataError("saved schedule", "expected an array", err)
	}
	if len(sections) < 3 {
		return nil, errors.NewMalformedDataError("saved schedule", "expected appointments, tasks and habit trackers", nil)
	}

	var appointments []*domain.Appointment
	if err := decodeSection(sections[0], domain.KindAppointments, &appointments); err != nil {
		return nil, err
	}
	var tasks []*domain.Task
	if err := decodeSection(sections[1], domain.KindTasks, &tasks); err != nil {
		return nil, err
	}
	var trackers []*domain.HabitTracker
	if err := decodeSection(sections[2], domain.KindHabitTrackers, &trackers); err != nil {
		return nil, err
	}

	snapshot := repository.NewSnapshot()
	for _, a := range appointments {
		snapshot.Appointments.Add(a)
	}
	for _, t := range tasks {
		snapshot.Tasks.Add(t)
	}
	for _, h := range trackers {
		snapshot.Trackers.Add(h)
	}
	return snapshot, nil
}

func decodeSection[T any](raw json.RawMessage, key string, out *[]*T) error {
	var section map[string]json.RawMessage
	if err := json.Unmarshal(raw, &section); err != nil {
		return errors.NewMalformedDataError(key, "expected an object", err)
	}
	items, ok := section[key]
	if !ok {
		return errors.NewMalformedDataError(key, "missing field "+key, nil)
	}
	if bytes.Equal(bytes.TrimSpace(items), []byte("null")) {
		return errors.NewMalformedDataError(key, "expected an array", nil)
	}
	if err := json.Unmarshal(items, out); err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return appErr
		}
		return errors.NewMalformedDataError(key, "expected an array", err)
	}
	for _, item := range *out {
		if item == nil {
			return errors.NewMalformedDataError(key, "null entry", nil)
		}
	}
	return nil
}
