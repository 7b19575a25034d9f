package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; el email es único sin distinguir mayúsculas.
type UserRepo struct{ base }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.with(func(st *state) error {
		key := strings.ToLower(user.Email)
		if _, ok := st.emailIndex[key]; ok {
			return domain.ErrEmailAlreadyExists
		}
		if user.ID == "" {
			user.ID = uuid.New().String()
		}
		st.users[user.ID] = *user
		st.userOrder = append(st.userOrder, user.ID)
		st.emailIndex[key] = user.ID
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		if id, ok := st.emailIndex[strings.ToLower(email)]; ok {
			u := st.users[id]
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.with(func(st *state) error {
		for _, id := range st.userOrder {
			u := st.users[id]
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}
