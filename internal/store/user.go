package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var userMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,

		subject TEXT,
		provider TEXT,

		nickname TEXT,
		email TEXT,

		role TEXT NOT NULL DEFAULT 'GUEST',

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		connected_at INTEGER,

		api_username TEXT,
		api_password BLOB,

		UNIQUE (subject, provider),
		UNIQUE (api_username)
	);`,
}

type User struct {
	ID int64

	Provider string
	Subject  string

	Role authz.Role

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConnectedAt time.Time

	Nickname string
	Email    string

	APIUsername string
	APIPassword []byte
}

// UserProvider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// UserSubject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

// UserRole implements authz.User.
func (u *User) UserRole() authz.Role {
	return u.Role
}

// DisplayName returns the best label available for the user.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.Email != "" {
		return u.Email
	}

	return "User"
}

var _ authz.User = &User{}

const userAttributes = "id, subject, provider, nickname, email, role, created_at, updated_at, connected_at, api_username, api_password"

func (s *Store) bindUser(stmt *sqlite.Stmt, user *User) error {
	user.ID = stmt.ColumnInt64(0)
	user.Subject = stmt.ColumnText(1)
	user.Provider = stmt.ColumnText(2)
	user.Nickname = stmt.ColumnText(3)
	user.Email = stmt.ColumnText(4)
	user.Role = authz.RoleFromString(stmt.ColumnText(5))
	user.CreatedAt = unixToTime(stmt.ColumnInt64(6))
	user.UpdatedAt = unixToTime(stmt.ColumnInt64(7))
	user.ConnectedAt = unixToTime(stmt.ColumnInt64(8))
	user.APIUsername = stmt.ColumnText(9)

	if length := stmt.ColumnLen(10); length > 0 {
		password := make([]byte, length)
		stmt.ColumnBytes(10, password)
		user.APIPassword = password
	}

	return nil
}

func (s *Store) FindOrCreateUser(ctx context.Context, subject, provider string) (*User, error) {
	var user *User
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE subject = ? AND provider = ? LIMIT 1`, userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if user != nil {
			return nil
		}

		query = fmt.Sprintf(`
			INSERT INTO users
				(subject, provider, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?) RETURNING %s;`,
			userAttributes,
		)

		now := time.Now().UTC().Unix()

		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider, string(authz.RoleGuest), now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id int64) (*User, error) {
	var user *User
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ? LIMIT 1`, userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if user == nil {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*User, error) {
	users := make([]*User, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users ORDER BY id`, userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, "SELECT COUNT(*) FROM users", &sqlitex.ExecOptions{
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

func (s *Store) UpdateUserProfile(ctx context.Context, user *User) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `UPDATE users SET email = ?, nickname = ?, role = ?, updated_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{user.Email, user.Nickname, string(user.Role), time.Now().UTC().Unix(), user.ID},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) UpdateUserRole(ctx context.Context, id int64, role authz.Role) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{string(role), time.Now().UTC().Unix(), id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) TouchUserConnection(ctx context.Context, id int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `UPDATE users SET connected_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{time.Now().UTC().Unix(), id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM users WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})

		return errors.WithStack(err)
	})

	return errors.WithStack(err)
}

func unixToTime(timestamp int64) time.Time {
	if timestamp == 0 {
		return time.Time{}
	}
	return time.Unix(timestamp, 0)
}

func (s *Store) ListCollageMembers(ctx context.Context, collageID int64) ([]*User, error) {
	users := make([]*User, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			SELECT %s FROM users u
			JOIN collage_members m ON m.user_id = u.id
			WHERE m.collage_id = ?
			ORDER BY m.id`,
			prefixedUserAttributes("u"),
		)

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{collageID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

func prefixedUserAttributes(prefix string) string {
	return fmt.Sprintf(
		"%[1]s.id, %[1]s.subject, %[1]s.provider, %[1]s.nickname, %[1]s.email, %[1]s.role, %[1]s.created_at, %[1]s.updated_at, %[1]s.connected_at, %[1]s.api_username, %[1]s.api_password",
		prefix,
	)
}
