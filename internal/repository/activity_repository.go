package repository

import (
	"context"

	"learnai_backend/internal/model"
	"learnai_backend/pkg/storage"
)

const activitiesKey = "activities"

// ActivityRepository 只追加；Remove 只用于撤销同一次记录中未完成的写入
type ActivityRepository struct {
	Store *storage.Store
}

func NewActivityRepository(store *storage.Store) *ActivityRepository {
	return &ActivityRepository{Store: store}
}

func (r *ActivityRepository) all(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if _, err := r.Store.Load(ctx, activitiesKey, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) Append(ctx context.Context, activity model.Activity) error {
	activities, err := r.all(ctx)
	if err != nil {
		return err
	}
	return r.Store.Save(ctx, activitiesKey, append(activities, activity))
}

// Remove 删除指定 id 的活动，不存在时什么也不做
func (r *ActivityRepository) Remove(ctx context.Context, id string) error {
	activities, err := r.all(ctx)
	if err != nil {
		return err
	}
	for i, a := range activities {
		if a.ID == id {
			return r.Store.Save(ctx, activitiesKey, append(activities[:i], activities[i+1:]...))
		}
	}
	return nil
}

// ListByUser 按写入顺序返回某个用户的全部活动
func (r *ActivityRepository) ListByUser(ctx context.Context, userID string) ([]model.Activity, error) {
	activities, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Activity, 0)
	for _, a := range activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
