package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var programMigrations = []string{
	`CREATE TABLE IF NOT EXISTS programs (
		id INTEGER PRIMARY KEY,
		collage_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		degree TEXT,
		description TEXT,
		duration_years INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY(collage_id) REFERENCES collages(id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_programs_collage ON programs(collage_id);`,
}

type Program struct {
	ID        int64
	CollageID int64

	Name          string
	Degree        string
	Description   string
	DurationYears int

	CreatedAt time.Time
	UpdatedAt time.Time
}

const programAttributes = "id, collage_id, name, degree, description, duration_years, created_at, updated_at"

func (s *Store) bindProgram(stmt *sqlite.Stmt, program *Program) error {
	program.ID = stmt.ColumnInt64(0)
	program.CollageID = stmt.ColumnInt64(1)
	program.Name = stmt.ColumnText(2)
	program.Degree = stmt.ColumnText(3)
	program.Description = stmt.ColumnText(4)
	program.DurationYears = int(stmt.ColumnInt64(5))
	program.CreatedAt = unixToTime(stmt.ColumnInt64(6))
	program.UpdatedAt = unixToTime(stmt.ColumnInt64(7))

	return nil
}

func (s *Store) CreateProgram(ctx context.Context, program *Program) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO programs
				(collage_id, name, degree, description, duration_years, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING %s;`,
			programAttributes,
		)

		now := time.Now().UTC().Unix()

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{program.CollageID, program.Name, program.Degree, program.Description, program.DurationYears, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				return errors.WithStack(s.bindProgram(stmt, program))
			},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) UpdateProgram(ctx context.Context, program *Program) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `UPDATE programs SET name = ?, degree = ?, description = ?, duration_years = ?, updated_at = ? WHERE id = ?`

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{program.Name, program.Degree, program.Description, program.DurationYears, time.Now().UTC().Unix(), program.ID},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) DeleteProgram(ctx context.Context, id int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM programs WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) FindProgramByID(ctx context.Context, id int64) (*Program, error) {
	var program *Program
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM programs WHERE id = ? LIMIT 1`, programAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				program = &Program{}
				return errors.WithStack(s.bindProgram(stmt, program))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if program == nil {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return program, nil
}

func (s *Store) ListProgramsByCollage(ctx context.Context, collageID int64) ([]*Program, error) {
	programs := make([]*Program, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM programs WHERE collage_id = ? ORDER BY id`, programAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{collageID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				program := &Program{}
				if err := s.bindProgram(stmt, program); err != nil {
					return errors.WithStack(err)
				}

				programs = append(programs, program)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return programs, nil
}

func (s *Store) ListPrograms(ctx context.Context) ([]*Program, error) {
	programs := make([]*Program, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM programs ORDER BY id`, programAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				program := &Program{}
				if err := s.bindProgram(stmt, program); err != nil {
					return errors.WithStack(err)
				}

				programs = append(programs, program)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return programs, nil
}

func (s *Store) CountPrograms(ctx context.Context) (int64, error) {
	return s.count(ctx, "programs")
}
