package repository

import (
	"context"
	"errors"

	"lumina-chat/internal/domain/user"
	lumina_errors "lumina-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return lumina_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, lumina_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getByField(ctx, "email = ?", email)
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getByField(ctx, "username = ?", username)
}

// FindByEmailOrUsername resolves a login identity. Either argument may be
// empty; the non-empty ones are ORed together.
func (r *PostgresUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (user.User, error) {
	if email == "" && username == "" {
		return user.User{}, lumina_errors.ErrNotFound
	}

	q := r.db.WithContext(ctx)
	switch {
	case email != "" && username != "":
		q = q.Where("email = ? OR username = ?", email, username)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		q = q.Where("username = ?", username)
	}

	var u user.User
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, lumina_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) getByField(ctx context.Context, cond string, value string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where(cond, value).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, lumina_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
