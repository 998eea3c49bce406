package authn

// User is an authenticated identity, whatever authenticated it.
type User interface {
	UserSubject() string
	UserProvider() string
}
