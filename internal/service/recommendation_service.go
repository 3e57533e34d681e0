package service

import (
	"context"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
	"learnai_backend/internal/repository"
	"learnai_backend/pkg/monitoring"
	"learnai_backend/pkg/storage"
	"learnai_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type RecommendationService struct {
	Store      *storage.Store
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
	Engine     RecommendationEngine
}

func NewRecommendationService(store *storage.Store, userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, cfg *config.Config) *RecommendationService {
	return &RecommendationService{
		Store:      store,
		UserRepo:   userRepo,
		CourseRepo: courseRepo,
		Engine:     RecommendationEngine{Limit: cfg.Recommendation.Limit},
	}
}

// GetRecommendations 匿名访问返回空列表，hasSession 为 false
func (s *RecommendationService) GetRecommendations(ctx context.Context, session *model.Session) ([]model.RecommendationResult, bool, error) {
	ctx, span := tracing.Tracer.Start(ctx, "RecommendationService.GetRecommendations")
	defer span.End()

	if session == nil {
		monitoring.RecommendationRequests.WithLabelValues("anonymous").Inc()
		return []model.RecommendationResult{}, false, nil
	}
	span.SetAttributes(attribute.String("user.id", session.UserID))

	var (
		user    model.User
		courses []model.Course
	)
	err := s.Store.Atomically(func() error {
		var err error
		if user, err = s.UserRepo.FindByID(ctx, session.UserID); err != nil {
			return err
		}
		courses, err = s.CourseRepo.All(ctx)
		return err
	})
	if err != nil {
		tracing.Fail(span, err)
		monitoring.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, true, err
	}

	results := s.Engine.Rank(user.LearningProfile, courses)
	span.SetAttributes(
		attribute.Int("catalog.size", len(courses)),
		attribute.Int("recommendations.count", len(results)),
	)
	monitoring.RecommendationRequests.WithLabelValues("ok").Inc()
	return results, true, nil
}
