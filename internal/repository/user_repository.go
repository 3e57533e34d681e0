package repository

import (
	"context"

	"learnai_backend/internal/model"
	"learnai_backend/internal/util"
	"learnai_backend/pkg/storage"
)

const usersKey = "users"

// UserRepository 用户列表整体保存在一个 key 下。
// 调用方负责在 Store.Atomically 内调用写方法。
type UserRepository struct {
	Store *storage.Store
}

func NewUserRepository(store *storage.Store) *UserRepository {
	return &UserRepository{Store: store}
}

func (r *UserRepository) All(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if _, err := r.Store.Load(ctx, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, util.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return model.User{}, err
	}
	email = model.NormalizeEmail(email)
	for _, u := range users {
		if model.NormalizeEmail(u.Email) == email {
			return u, nil
		}
	}
	return model.User{}, util.ErrUserNotFound
}

// Create 邮箱已存在时返回 ErrEmailRegistered
func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	email := model.NormalizeEmail(user.Email)
	for _, u := range users {
		if model.NormalizeEmail(u.Email) == email {
			return util.ErrEmailRegistered
		}
	}
	return r.Store.Save(ctx, usersKey, append(users, user))
}

// Update 用新值整体替换同 ID 的用户
func (r *UserRepository) Update(ctx context.Context, user model.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return r.Store.Save(ctx, usersKey, users)
		}
	}
	return util.ErrUserNotFound
}
