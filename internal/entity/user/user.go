package user

import "github.com/pkg/errors"

// User is what the external auth collaborator hands us. Only ID is used for storage.
type User struct {
	ID    string
	Name  string
	Photo string
}

var ErrAnonymous = errors.New("user id is empty")

func (u User) Validate() error {
	if u.ID == "" {
		return ErrAnonymous
	}
	return nil
}
