package users

import (
	"context"
	"strings"

	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("user not found")

// Directory looks up and stores user accounts. It does not enforce email
// uniqueness; callers check FindByEmail first.
type Directory struct {
	store   *store.Store
	session *Session
}

func NewDirectory(s *store.Store, session *Session) *Directory {
	return &Directory{store: s, session: session}
}

func (d *Directory) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := d.store.View(func(kv store.KV) error {
		var err error
		users, err = store.LoadList[models.User](ctx, kv, store.UsersKey)
		return err
	})
	return users, err
}

// FindByEmail matches the email case-insensitively.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.find(ctx, func(u models.User) bool {
		return strings.EqualFold(u.Email, strings.TrimSpace(email))
	})
}

func (d *Directory) FindByID(ctx context.Context, id string) (*models.User, error) {
	return d.find(ctx, func(u models.User) bool { return u.ID == id })
}

func (d *Directory) find(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Save appends user to the directory. A directory built with a session also
// makes user the current session user.
func (d *Directory) Save(ctx context.Context, user models.User) error {
	err := d.store.Update(func(kv store.KV) error {
		users, err := store.LoadList[models.User](ctx, kv, store.UsersKey)
		if err != nil {
			return err
		}
		users = append(users, user)
		return store.SaveList(ctx, kv, store.UsersKey, users)
	})
	if err != nil {
		return err
	}
	if d.session == nil {
		return nil
	}
	return d.session.Set(ctx, user)
}
