package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

func init() {
	RegisterGoMigration(2, Up_000002_truncate_instants_to_minute, Down_000002_truncate_instants_to_minute)
}

var instantColumns = []struct {
	table  string
	column string
}{
	{"appointments", "start_time"},
	{"tasks", "due_time"},
	{"habit_completions", "completed_at"},
}

// Up_000002_truncate_instants_to_minute drops the seconds from every stored
// instant. Rows imported by hand or by older builds may carry seconds, which
// break minute-granular comparisons after loading.
func Up_000002_truncate_instants_to_minute(tx *sql.Tx) error {
	for _, c := range instantColumns {
		if err := truncateColumn(tx, c.table, c.column); err != nil {
			return err
		}
	}
	return nil
}

// Down_000002_truncate_instants_to_minute cannot restore the dropped seconds.
func Down_000002_truncate_instants_to_minute(tx *sql.Tx) error {
	return nil
}

func truncateColumn(tx *sql.Tx, table, column string) error {
	type row struct {
		id    int64
		value string
	}
	var rowsToFix []row

	rows, err := tx.Query(fmt.Sprintf("SELECT id, %s FROM %s", column, table))
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.value); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		rowsToFix = append(rowsToFix, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating %s: %w", table, err)
	}
	rows.Close()

	stmt, err := tx.Prepare(fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, column))
	if err != nil {
		return fmt.Errorf("failed to prepare %s update: %w", table, err)
	}
	defer stmt.Close()

	for _, r := range rowsToFix {
		parsed, err := time.Parse(time.RFC3339, r.value)
		if err != nil {
			return fmt.Errorf("%s.%s for id %d is not RFC3339: %w", table, column, r.id, err)
		}
		truncated := parsed.Truncate(time.Minute).Format(time.RFC3339)
		if truncated == r.value {
			continue
		}
		if _, err := stmt.Exec(truncated, r.id); err != nil {
			return fmt.Errorf("failed to update %s for id %d: %w", table, r.id, err)
		}
	}
	return nil
}
