package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var galleryMigrations = []string{
	`CREATE TABLE IF NOT EXISTS gallery_events (
		id INTEGER PRIMARY KEY,
		collage_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		event_date INTEGER,
		image_keys TEXT NOT NULL DEFAULT '[]',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY(collage_id) REFERENCES collages(id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_gallery_events_collage ON gallery_events(collage_id);`,
}

type GalleryEvent struct {
	ID        int64
	CollageID int64

	Title       string
	Description string
	EventDate   time.Time
	ImageKeys   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

const galleryEventAttributes = "id, collage_id, title, description, event_date, image_keys, created_at, updated_at"

func (s *Store) bindGalleryEvent(stmt *sqlite.Stmt, event *GalleryEvent) error {
	event.ID = stmt.ColumnInt64(0)
	event.CollageID = stmt.ColumnInt64(1)
	event.Title = stmt.ColumnText(2)
	event.Description = stmt.ColumnText(3)
	event.EventDate = unixToTime(stmt.ColumnInt64(4))

	rawKeys := stmt.ColumnText(5)
	event.ImageKeys = make([]string, 0)
	if rawKeys != "" {
		if err := json.Unmarshal([]byte(rawKeys), &event.ImageKeys); err != nil {
			return errors.WithStack(err)
		}
	}

	event.CreatedAt = unixToTime(stmt.ColumnInt64(6))
	event.UpdatedAt = unixToTime(stmt.ColumnInt64(7))

	return nil
}

func (s *Store) CreateGalleryEvent(ctx context.Context, event *GalleryEvent) error {
	rawKeys, err := json.Marshal(event.ImageKeys)
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO gallery_events
				(collage_id, title, description, event_date, image_keys, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING %s;`,
			galleryEventAttributes,
		)

		now := time.Now().UTC().Unix()

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{event.CollageID, event.Title, event.Description, event.EventDate.UTC().Unix(), string(rawKeys), now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				return errors.WithStack(s.bindGalleryEvent(stmt, event))
			},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) UpdateGalleryEvent(ctx context.Context, event *GalleryEvent) error {
	rawKeys, err := json.Marshal(event.ImageKeys)
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `UPDATE gallery_events SET title = ?, description = ?, event_date = ?, image_keys = ?, updated_at = ? WHERE id = ?`

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{event.Title, event.Description, event.EventDate.UTC().Unix(), string(rawKeys), time.Now().UTC().Unix(), event.ID},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) DeleteGalleryEvent(ctx context.Context, id int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM gallery_events WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) FindGalleryEventByID(ctx context.Context, id int64) (*GalleryEvent, error) {
	var event *GalleryEvent
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM gallery_events WHERE id = ? LIMIT 1`, galleryEventAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				event = &GalleryEvent{}
				return errors.WithStack(s.bindGalleryEvent(stmt, event))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if event == nil {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return event, nil
}

func (s *Store) ListGalleryEventsByCollage(ctx context.Context, collageID int64) ([]*GalleryEvent, error) {
	return s.listGalleryEvents(ctx, "WHERE collage_id = ?", []any{collageID})
}

func (s *Store) ListGalleryEvents(ctx context.Context) ([]*GalleryEvent, error) {
	return s.listGalleryEvents(ctx, "", nil)
}

func (s *Store) listGalleryEvents(ctx context.Context, where string, args []any) ([]*GalleryEvent, error) {
	events := make([]*GalleryEvent, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM gallery_events %s ORDER BY event_date DESC, id`, galleryEventAttributes, where)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				event := &GalleryEvent{}
				if err := s.bindGalleryEvent(stmt, event); err != nil {
					return errors.WithStack(err)
				}

				events = append(events, event)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return events, nil
}

func (s *Store) CountGalleryEvents(ctx context.Context) (int64, error) {
	return s.count(ctx, "gallery_events")
}
