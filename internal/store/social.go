package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var socialLinkMigrations = []string{
	`CREATE TABLE IF NOT EXISTS social_links (
		id INTEGER PRIMARY KEY,
		collage_id INTEGER NOT NULL,
		platform TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY(collage_id) REFERENCES collages(id) ON DELETE CASCADE,
		UNIQUE(collage_id, platform)
	);`,
}

type SocialLink struct {
	ID        int64
	CollageID int64

	Platform string
	URL      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

const socialLinkAttributes = "id, collage_id, platform, url, created_at, updated_at"

func (s *Store) bindSocialLink(stmt *sqlite.Stmt, link *SocialLink) error {
	link.ID = stmt.ColumnInt64(0)
	link.CollageID = stmt.ColumnInt64(1)
	link.Platform = stmt.ColumnText(2)
	link.URL = stmt.ColumnText(3)
	link.CreatedAt = unixToTime(stmt.ColumnInt64(4))
	link.UpdatedAt = unixToTime(stmt.ColumnInt64(5))

	return nil
}

func (s *Store) CreateSocialLink(ctx context.Context, link *SocialLink) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO social_links
				(collage_id, platform, url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?) RETURNING %s;`,
			socialLinkAttributes,
		)

		now := time.Now().UTC().Unix()

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{link.CollageID, link.Platform, link.URL, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				return errors.WithStack(s.bindSocialLink(stmt, link))
			},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) UpdateSocialLink(ctx context.Context, link *SocialLink) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `UPDATE social_links SET platform = ?, url = ?, updated_at = ? WHERE id = ?`

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{link.Platform, link.URL, time.Now().UTC().Unix(), link.ID},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) DeleteSocialLink(ctx context.Context, id int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM social_links WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) FindSocialLinkByID(ctx context.Context, id int64) (*SocialLink, error) {
	var link *SocialLink
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM social_links WHERE id = ? LIMIT 1`, socialLinkAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				link = &SocialLink{}
				return errors.WithStack(s.bindSocialLink(stmt, link))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if link == nil {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return link, nil
}

func (s *Store) ListSocialLinksByCollage(ctx context.Context, collageID int64) ([]*SocialLink, error) {
	return s.listSocialLinks(ctx, "WHERE collage_id = ?", []any{collageID})
}

func (s *Store) ListSocialLinks(ctx context.Context) ([]*SocialLink, error) {
	return s.listSocialLinks(ctx, "", nil)
}

func (s *Store) listSocialLinks(ctx context.Context, where string, args []any) ([]*SocialLink, error) {
	links := make([]*SocialLink, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM social_links %s ORDER BY id`, socialLinkAttributes, where)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				link := &SocialLink{}
				if err := s.bindSocialLink(stmt, link); err != nil {
					return errors.WithStack(err)
				}

				links = append(links, link)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return links, nil
}
