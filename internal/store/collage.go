package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var collageMigrations = []string{
	`CREATE TABLE IF NOT EXISTS collages (
		id INTEGER PRIMARY KEY,
		slug TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		logo_key TEXT,

		theme_accent TEXT,
		theme_font TEXT,

		published BOOLEAN NOT NULL DEFAULT 0,

		owner_id INTEGER NOT NULL,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,

		FOREIGN KEY(owner_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE(slug)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_collages_slug ON collages(slug);`,
	`CREATE TABLE IF NOT EXISTS collage_members (
		id INTEGER PRIMARY KEY,
		collage_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		FOREIGN KEY(collage_id) REFERENCES collages(id) ON DELETE CASCADE,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE(collage_id, user_id)
	);`,
}

type Collage struct {
	ID int64

	Slug        string
	Name        string
	Description string
	LogoKey     string

	ThemeAccent string
	ThemeFont   string

	Published bool

	OwnerID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

const collageAttributes = "id, slug, name, description, logo_key, theme_accent, theme_font, published, owner_id, created_at, updated_at"

func (s *Store) bindCollage(stmt *sqlite.Stmt, collage *Collage) error {
	collage.ID = stmt.ColumnInt64(0)
	collage.Slug = stmt.ColumnText(1)
	collage.Name = stmt.ColumnText(2)
	collage.Description = stmt.ColumnText(3)
	collage.LogoKey = stmt.ColumnText(4)
	collage.ThemeAccent = stmt.ColumnText(5)
	collage.ThemeFont = stmt.ColumnText(6)
	collage.Published = stmt.ColumnBool(7)
	collage.OwnerID = stmt.ColumnInt64(8)
	collage.CreatedAt = unixToTime(stmt.ColumnInt64(9))
	collage.UpdatedAt = unixToTime(stmt.ColumnInt64(10))

	return nil
}

func (s *Store) CreateCollage(ctx context.Context, collage *Collage) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO collages
				(slug, name, description, logo_key, theme_accent, theme_font, published, owner_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING %s;`,
			collageAttributes,
		)

		now := time.Now().UTC().Unix()

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				collage.Slug, collage.Name, collage.Description, collage.LogoKey,
				collage.ThemeAccent, collage.ThemeFont, collage.Published,
				collage.OwnerID, now, now,
			},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				return errors.WithStack(s.bindCollage(stmt, collage))
			},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) UpdateCollage(ctx context.Context, collage *Collage) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `UPDATE collages SET
			slug = ?, name = ?, description = ?, logo_key = ?,
			theme_accent = ?, theme_font = ?, published = ?, updated_at = ?
			WHERE id = ?`

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				collage.Slug, collage.Name, collage.Description, collage.LogoKey,
				collage.ThemeAccent, collage.ThemeFont, collage.Published,
				time.Now().UTC().Unix(), collage.ID,
			},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) DeleteCollage(ctx context.Context, id int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM collages WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) FindCollageByID(ctx context.Context, id int64) (*Collage, error) {
	return s.findCollage(ctx, "id = ?", id)
}

func (s *Store) FindCollageBySlug(ctx context.Context, slug string) (*Collage, error) {
	return s.findCollage(ctx, "slug = ?", slug)
}

func (s *Store) findCollage(ctx context.Context, where string, arg any) (*Collage, error) {
	var collage *Collage
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM collages WHERE %s LIMIT 1`, collageAttributes, where)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{arg},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				collage = &Collage{}
				return errors.WithStack(s.bindCollage(stmt, collage))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if collage == nil {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return collage, nil
}

func (s *Store) ListCollages(ctx context.Context) ([]*Collage, error) {
	return s.listCollages(ctx, "", nil)
}

func (s *Store) ListPublishedCollages(ctx context.Context) ([]*Collage, error) {
	return s.listCollages(ctx, "WHERE published = 1", nil)
}

// ListOwnedCollages returns the collages owned by the user, insertion order.
func (s *Store) ListOwnedCollages(ctx context.Context, userID int64) ([]*Collage, error) {
	return s.listCollages(ctx, "WHERE owner_id = ?", []any{userID})
}

// ListMemberCollages returns the collages the user is a member of but does
// not own, insertion order. Owned collages are excluded so that merging
// owned and member lists never yields duplicates.
func (s *Store) ListMemberCollages(ctx context.Context, userID int64) ([]*Collage, error) {
	collages := make([]*Collage, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			SELECT %s FROM collages c
			JOIN collage_members m ON m.collage_id = c.id
			WHERE m.user_id = ? AND c.owner_id != ?
			ORDER BY m.id`,
			prefixedCollageAttributes("c"),
		)

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID, userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				collage := &Collage{}
				if err := s.bindCollage(stmt, collage); err != nil {
					return errors.WithStack(err)
				}

				collages = append(collages, collage)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return collages, nil
}

func (s *Store) listCollages(ctx context.Context, where string, args []any) ([]*Collage, error) {
	collages := make([]*Collage, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM collages %s ORDER BY id`, collageAttributes, where)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				collage := &Collage{}
				if err := s.bindCollage(stmt, collage); err != nil {
					return errors.WithStack(err)
				}

				collages = append(collages, collage)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return collages, nil
}

func (s *Store) CountCollages(ctx context.Context) (int64, error) {
	return s.count(ctx, "collages")
}

func (s *Store) AddCollageMember(ctx context.Context, collageID, userID int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `INSERT OR IGNORE INTO collage_members (collage_id, user_id) VALUES (?, ?)`, &sqlitex.ExecOptions{
			Args: []any{collageID, userID},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) RemoveCollageMember(ctx context.Context, collageID, userID int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM collage_members WHERE collage_id = ? AND user_id = ?`, &sqlitex.ExecOptions{
			Args: []any{collageID, userID},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) count(ctx context.Context, table string) (int64, error) {
	var count int64
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, fmt.Sprintf("SELECT COUNT(*) FROM %s", table), &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

func prefixedCollageAttributes(prefix string) string {
	return fmt.Sprintf(
		"%[1]s.id, %[1]s.slug, %[1]s.name, %[1]s.description, %[1]s.logo_key, %[1]s.theme_accent, %[1]s.theme_font, %[1]s.published, %[1]s.owner_id, %[1]s.created_at, %[1]s.updated_at",
		prefix,
	)
}
