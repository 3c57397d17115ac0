package sqlite

import (
	"time"

	"life-planner/internal/errors"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func parseColumn(entity, column, value string) (time.Time, error) {
	parsed, err := ParseTimeFromDB(value)
	if err != nil {
		return time.Time{}, errors.NewMalformedDataError(entity, column+" is not RFC3339", err)
	}
	return parsed, nil
}

// ScanAppointment scans a single appointment row
func ScanAppointment(scanner Scanner) (*AppointmentRow, error) {
	row := &AppointmentRow{}
	var start string
	err := scanner.Scan(&row.ID, &row.Position, &row.Name, &row.Description, &start, &row.Hours, &row.Minutes)
	if err != nil {
		return nil, err
	}
	parsed, err := parseColumn("appointment", "start_time", start)
	if err != nil {
		return nil, err
	}
	row.StartTime = parsed
	return row, nil
}

// ScanAppointments scans multiple appointment rows
func ScanAppointments(rows Rows) ([]*AppointmentRow, error) {
	return scanAll(rows, ScanAppointment)
}

// ScanTask scans a single task row
func ScanTask(scanner Scanner) (*TaskRow, error) {
	row := &TaskRow{}
	var due string
	err := scanner.Scan(&row.ID, &row.Position, &row.Name, &row.Description, &due, &row.Completed)
	if err != nil {
		return nil, err
	}
	parsed, err := parseColumn("task", "due_time", due)
	if err != nil {
		return nil, err
	}
	row.DueTime = parsed
	return row, nil
}

// ScanTasks scans multiple task rows
func ScanTasks(rows Rows) ([]*TaskRow, error) {
	return scanAll(rows, ScanTask)
}

// ScanTracker scans a single habit tracker row
func ScanTracker(scanner Scanner) (*TrackerRow, error) {
	row := &TrackerRow{}
	if err := scanner.Scan(&row.ID, &row.Position, &row.Name); err != nil {
		return nil, err
	}
	return row, nil
}

// ScanTrackers scans multiple habit tracker rows
func ScanTrackers(rows Rows) ([]*TrackerRow, error) {
	return scanAll(rows, ScanTracker)
}

// ScanCompletion scans a single completion row
func ScanCompletion(scanner Scanner) (*CompletionRow, error) {
	row := &CompletionRow{}
	var completedAt string
	if err := scanner.Scan(&row.TrackerID, &row.Position, &completedAt); err != nil {
		return nil, err
	}
	parsed, err := parseColumn("habit completion", "completed_at", completedAt)
	if err != nil {
		return nil, err
	}
	row.CompletedAt = parsed
	return row, nil
}

// ScanCompletions scans multiple completion rows
func ScanCompletions(rows Rows) ([]*CompletionRow, error) {
	return scanAll(rows, ScanCompletion)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
