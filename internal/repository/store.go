// Package repository defines how the planner's collections are persisted.
package repository

import (
	"context"

	"life-planner/internal/domain"
)

// Snapshot holds the three planner collections that are loaded and saved
// together.
type Snapshot struct {
	Appointments *domain.Schedule[*domain.Appointment]
	Tasks        *domain.Schedule[*domain.Task]
	Trackers     *domain.HabitTrackers
}

// NewSnapshot returns a snapshot with empty collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Appointments: domain.NewSchedule[*domain.Appointment](domain.KindAppointments),
		Tasks:        domain.NewSchedule[*domain.Task](domain.KindTasks),
		Trackers:     domain.NewHabitTrackers(),
	}
}

// Store loads and saves a whole snapshot. Save replaces everything that was
// previously stored.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
	Close() error
}
