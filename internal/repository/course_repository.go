package repository

import (
	"context"

	"learnai_backend/internal/model"
	"learnai_backend/internal/util"
	"learnai_backend/pkg/storage"
)

const coursesKey = "courses"

type CourseRepository struct {
	Store *storage.Store
}

func NewCourseRepository(store *storage.Store) *CourseRepository {
	return &CourseRepository{Store: store}
}

func (r *CourseRepository) All(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if _, err := r.Store.Load(ctx, coursesKey, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (model.Course, error) {
	courses, err := r.All(ctx)
	if err != nil {
		return model.Course{}, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Course{}, util.ErrCourseNotFound
}

func (r *CourseRepository) SaveAll(ctx context.Context, courses []model.Course) error {
	return r.Store.Save(ctx, coursesKey, courses)
}
