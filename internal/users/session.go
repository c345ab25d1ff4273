package users

import (
	"context"

	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/store"
)

// Session is the signed-in user of this installation. It holds a copy of the
// user record; logging in or out never touches the directory.
type Session struct {
	store *store.Store
}

func NewSession(s *store.Store) *Session {
	return &Session{store: s}
}

// Current returns nil when nobody is signed in.
func (s *Session) Current(ctx context.Context) (*models.User, error) {
	var user *models.User
	err := s.store.View(func(kv store.KV) error {
		var err error
		user, err = store.LoadObject[models.User](ctx, kv, store.CurrentUserKey)
		return err
	})
	return user, err
}

func (s *Session) Set(ctx context.Context, user models.User) error {
	return s.store.Update(func(kv store.KV) error {
		return store.SaveObject(ctx, kv, store.CurrentUserKey, user)
	})
}

func (s *Session) Clear(ctx context.Context) error {
	return s.store.Update(func(kv store.KV) error {
		return kv.Delete(ctx, store.CurrentUserKey)
	})
}
