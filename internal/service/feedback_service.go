package service

import (
	"context"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
	"learnai_backend/internal/repository"
	"learnai_backend/pkg/storage"
)

type FeedbackService struct {
	Store        *storage.Store
	UserRepo     *repository.UserRepository
	ActivityRepo *repository.ActivityRepository
	Window       int
	Now          func() time.Time
}

func NewFeedbackService(store *storage.Store, userRepo *repository.UserRepository, activityRepo *repository.ActivityRepository, cfg *config.Config) *FeedbackService {
	window := cfg.Feedback.RecentWindow
	if window <= 0 {
		window = DefaultFeedbackWindow
	}
	return &FeedbackService{
		Store:        store,
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		Window:       window,
		Now:          time.Now,
	}
}

func (s *FeedbackService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// GetFeedback 匿名访问返回空列表，hasSession 为 false
func (s *FeedbackService) GetFeedback(ctx context.Context, session *model.Session) ([]model.FeedbackItem, bool, error) {
	if session == nil {
		return []model.FeedbackItem{}, false, nil
	}

	var (
		user       model.User
		activities []model.Activity
	)
	err := s.Store.Atomically(func() error {
		var err error
		if user, err = s.UserRepo.FindByID(ctx, session.UserID); err != nil {
			return err
		}
		activities, err = s.ActivityRepo.ListByUser(ctx, session.UserID)
		return err
	})
	if err != nil {
		return nil, true, err
	}

	recent := RecentActivities(activities, s.Window)
	return AdviseFeedback(user.Progress, recent, s.now()), true, nil
}
