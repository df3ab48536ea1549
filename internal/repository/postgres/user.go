package postgres

import (
	"context"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, name, role, department, status
		FROM users
		WHERE id = $1
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, notFoundOr("user", "get user", err)
	}
	return &user, nil
}

// ListDoctors returns active doctors, optionally limited to one department.
func (r *userRepository) ListDoctors(ctx context.Context, department string) ([]*model.User, error) {
	query := `
		SELECT id, name, role, department, status
		FROM users
		WHERE role = $1 AND status = 'active'
			AND ($2 = '' OR department = $2)
		ORDER BY name
	`
	doctors := []*model.User{}
	if err := r.db.SelectContext(ctx, &doctors, query, model.UserRoleDoctor, department); err != nil {
		return nil, apperrors.Persistence("list doctors", err)
	}
	return doctors, nil
}
