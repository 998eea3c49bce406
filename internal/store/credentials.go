package store

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/bornholm/collagio/internal/authn"
	"github.com/bornholm/collagio/internal/authn/basic"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// RegenerateAPICredentials rotates the user's REST API credentials and
// returns the cleartext password, shown once.
func (s *Store) RegenerateAPICredentials(ctx context.Context, userID int64, passwordLength int) (string, error) {
	password := generatePassword(passwordLength)

	passwordHash, err := hashPassword(password)
	if err != nil {
		return "", errors.WithStack(err)
	}

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := "UPDATE users SET api_username = COALESCE(api_username, 'api-' || id), api_password = ? WHERE id = ?"
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{passwordHash, userID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	return password, nil
}

// Authenticate implements basic.UserProvider for the REST API.
func (s *Store) Authenticate(ctx context.Context, username string, password string) (authn.User, error) {
	var user *User
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM users WHERE api_username = ? LIMIT 1", userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{username},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if user == nil || !verifyPassword([]byte(password), user.APIPassword) {
			return errors.WithStack(authn.ErrUnauthenticated)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

var _ basic.UserProvider = &Store{}

func hashPassword(password string) ([]byte, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return bytes, err
}

func verifyPassword(password, hash []byte) bool {
	err := bcrypt.CompareHashAndPassword(hash, password)
	return err == nil
}

func generatePassword(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var password []byte

	for i := 0; i < length; i++ {
		randNum := rand.IntN(len(charset))
		password = append(password, charset[randNum])
	}

	return string(password)
}
