package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var formMigrations = []string{
	`CREATE TABLE IF NOT EXISTS forms (
		id INTEGER PRIMARY KEY,
		collage_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		fields TEXT NOT NULL DEFAULT '[]',
		open BOOLEAN NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY(collage_id) REFERENCES collages(id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_forms_collage ON forms(collage_id);`,
	`CREATE TABLE IF NOT EXISTS form_submissions (
		id TEXT PRIMARY KEY,
		form_id INTEGER NOT NULL,
		form_values TEXT NOT NULL DEFAULT '{}',
		submitted_at INTEGER NOT NULL,
		FOREIGN KEY(form_id) REFERENCES forms(id) ON DELETE CASCADE
	);`,
}

// FormField describes one input of a form. Rule is an optional
// expression evaluated against the submitted value.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Required bool   `json:"required"`
	Rule     string `json:"rule,omitempty"`
}

type Form struct {
	ID        int64
	CollageID int64

	Title       string
	Description string
	Fields      []FormField
	Open        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type FormSubmission struct {
	ID     string
	FormID int64

	Values map[string]string

	SubmittedAt time.Time
}

const formAttributes = "id, collage_id, title, description, fields, open, created_at, updated_at"

func (s *Store) bindForm(stmt *sqlite.Stmt, form *Form) error {
	form.ID = stmt.ColumnInt64(0)
	form.CollageID = stmt.ColumnInt64(1)
	form.Title = stmt.ColumnText(2)
	form.Description = stmt.ColumnText(3)

	rawFields := stmt.ColumnText(4)
	form.Fields = make([]FormField, 0)
	if rawFields != "" {
		if err := json.Unmarshal([]byte(rawFields), &form.Fields); err != nil {
			return errors.WithStack(err)
		}
	}

	form.Open = stmt.ColumnBool(5)
	form.CreatedAt = unixToTime(stmt.ColumnInt64(6))
	form.UpdatedAt = unixToTime(stmt.ColumnInt64(7))

	return nil
}

func (s *Store) CreateForm(ctx context.Context, form *Form) error {
	rawFields, err := json.Marshal(form.Fields)
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO forms
				(collage_id, title, description, fields, open, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING %s;`,
			formAttributes,
		)

		now := time.Now().UTC().Unix()

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{form.CollageID, form.Title, form.Description, string(rawFields), form.Open, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				return errors.WithStack(s.bindForm(stmt, form))
			},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) UpdateForm(ctx context.Context, form *Form) error {
	rawFields, err := json.Marshal(form.Fields)
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `UPDATE forms SET title = ?, description = ?, fields = ?, open = ?, updated_at = ? WHERE id = ?`

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{form.Title, form.Description, string(rawFields), form.Open, time.Now().UTC().Unix(), form.ID},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) DeleteForm(ctx context.Context, id int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM forms WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) FindFormByID(ctx context.Context, id int64) (*Form, error) {
	var form *Form
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM forms WHERE id = ? LIMIT 1`, formAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				form = &Form{}
				return errors.WithStack(s.bindForm(stmt, form))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if form == nil {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return form, nil
}

func (s *Store) ListFormsByCollage(ctx context.Context, collageID int64) ([]*Form, error) {
	return s.listForms(ctx, "WHERE collage_id = ?", []any{collageID})
}

func (s *Store) ListForms(ctx context.Context) ([]*Form, error) {
	return s.listForms(ctx, "", nil)
}

func (s *Store) listForms(ctx context.Context, where string, args []any) ([]*Form, error) {
	forms := make([]*Form, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM forms %s ORDER BY id`, formAttributes, where)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				form := &Form{}
				if err := s.bindForm(stmt, form); err != nil {
					return errors.WithStack(err)
				}

				forms = append(forms, form)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return forms, nil
}

func (s *Store) CountForms(ctx context.Context) (int64, error) {
	return s.count(ctx, "forms")
}

func (s *Store) CreateFormSubmission(ctx context.Context, submission *FormSubmission) error {
	if submission.ID == "" {
		submission.ID = xid.New().String()
	}

	rawValues, err := json.Marshal(submission.Values)
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `INSERT INTO form_submissions (id, form_id, form_values, submitted_at) VALUES (?, ?, ?, ?)`

		now := time.Now().UTC()
		submission.SubmittedAt = now

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{submission.ID, submission.FormID, string(rawValues), now.Unix()},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) ListFormSubmissions(ctx context.Context, formID int64) ([]*FormSubmission, error) {
	submissions := make([]*FormSubmission, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := `SELECT id, form_id, form_values, submitted_at FROM form_submissions WHERE form_id = ? ORDER BY submitted_at DESC`
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{formID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				submission := &FormSubmission{
					ID:          stmt.ColumnText(0),
					FormID:      stmt.ColumnInt64(1),
					Values:      map[string]string{},
					SubmittedAt: unixToTime(stmt.ColumnInt64(3)),
				}

				if raw := stmt.ColumnText(2); raw != "" {
					if err := json.Unmarshal([]byte(raw), &submission.Values); err != nil {
						return errors.WithStack(err)
					}
				}

				submissions = append(submissions, submission)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return submissions, nil
}
