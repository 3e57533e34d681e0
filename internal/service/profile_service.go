package service

import (
	"context"
	"strings"
	"time"

	"learnai_backend/internal/model"
	"learnai_backend/internal/repository"
	"learnai_backend/internal/util"
	"learnai_backend/pkg/logger"
	"learnai_backend/pkg/storage"

	"go.uber.org/zap"
)

// ProfilePatch 为 nil 的字段保持不变
type ProfilePatch struct {
	Name                 *string              `json:"name"`
	LearningStyle        *model.LearningStyle `json:"learningStyle"`
	SkillLevel           *model.Level         `json:"skillLevel"`
	Interests            []string             `json:"interests"`
	LearningPace         *model.LearningPace  `json:"learningPace"`
	PreferredContentType *model.ContentType   `json:"preferredContentType"`
	PreferredStudyTime   *string              `json:"preferredStudyTime"`
}

func (p ProfilePatch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return util.NewValidationError("name", "must not be empty")
	}
	if p.LearningStyle != nil && !p.LearningStyle.Valid() {
		return util.NewValidationError("learningStyle", "unknown learning style "+string(*p.LearningStyle))
	}
	if p.SkillLevel != nil && !p.SkillLevel.Valid() {
		return util.NewValidationError("skillLevel", "unknown skill level "+string(*p.SkillLevel))
	}
	if p.LearningPace != nil && !p.LearningPace.Valid() {
		return util.NewValidationError("learningPace", "unknown learning pace "+string(*p.LearningPace))
	}
	if p.PreferredContentType != nil && !p.PreferredContentType.Valid() {
		return util.NewValidationError("preferredContentType", "unknown content type "+string(*p.PreferredContentType))
	}
	return nil
}

// apply 返回新的用户值
func (p ProfilePatch) apply(u model.User) model.User {
	lp := u.LearningProfile
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.LearningStyle != nil {
		lp.LearningStyle = *p.LearningStyle
	}
	if p.SkillLevel != nil {
		lp.SkillLevel, _ = model.ParseLevel(string(*p.SkillLevel))
	}
	if p.Interests != nil {
		lp.Interests = model.NormalizeInterests(p.Interests)
	}
	if p.LearningPace != nil {
		lp.LearningPace = *p.LearningPace
	}
	if p.PreferredContentType != nil {
		lp.PreferredContentType = *p.PreferredContentType
	}
	if p.PreferredStudyTime != nil {
		u.Behavior.PreferredStudyTime = strings.TrimSpace(*p.PreferredStudyTime)
	}
	u.LearningProfile = lp
	return u
}

type ProfileService struct {
	Store        *storage.Store
	UserRepo     *repository.UserRepository
	ActivityRepo *repository.ActivityRepository
	CourseRepo   *repository.CourseRepository
	Now          func() time.Time
}

func NewProfileService(store *storage.Store, userRepo *repository.UserRepository, activityRepo *repository.ActivityRepository, courseRepo *repository.CourseRepository) *ProfileService {
	return &ProfileService{
		Store:        store,
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		CourseRepo:   courseRepo,
		Now:          time.Now,
	}
}

func (s *ProfileService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// update 在状态锁内读取用户、计算新值并保存
func (s *ProfileService) update(ctx context.Context, userID string, fn func(model.User) (model.User, error)) (model.User, error) {
	var updated model.User
	err := s.Store.Atomically(func() error {
		current, err := s.UserRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		updated, err = fn(current)
		if err != nil {
			return err
		}
		return s.UserRepo.Update(ctx, updated)
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, session *model.Session, patch ProfilePatch) (model.User, bool, error) {
	if session == nil {
		return model.User{}, false, nil
	}
	if err := patch.validate(); err != nil {
		return model.User{}, true, err
	}
	user, err := s.update(ctx, session.UserID, func(u model.User) (model.User, error) {
		return patch.apply(u), nil
	})
	return user, true, err
}

// Adapt 用调用方提供的学习数据更新画像
func (s *ProfileService) Adapt(ctx context.Context, session *model.Session, data model.ActivityData) (model.User, bool, error) {
	if session == nil {
		return model.User{}, false, nil
	}
	user, err := s.update(ctx, session.UserID, func(u model.User) (model.User, error) {
		u.LearningProfile = AdaptProfile(u.LearningProfile, data)
		return u, nil
	})
	return user, true, err
}

// Refresh 从活动记录中分析学习数据并更新画像，同时更新学习节奏
func (s *ProfileService) Refresh(ctx context.Context, session *model.Session) (model.User, bool, error) {
	if session == nil {
		return model.User{}, false, nil
	}
	now := s.now()
	user, err := s.update(ctx, session.UserID, func(u model.User) (model.User, error) {
		activities, err := s.ActivityRepo.ListByUser(ctx, u.ID)
		if err != nil {
			return u, err
		}
		courses, err := s.CourseRepo.All(ctx)
		if err != nil {
			return u, err
		}

		insights := AnalyzeBehavior(activities, now)
		data := model.ActivityData{
			ContentTypeUsage: insights.ContentUsage,
			QuizPerformance:  insights.QuizPerformance.Scores,
			CompletedCourses: completedCourses(activities, courses),
		}
		u.LearningProfile = AdaptProfile(u.LearningProfile, data)
		u.LearningProfile.LearningPace = insights.LearningPace
		return u, nil
	})
	if err != nil {
		return model.User{}, true, err
	}
	logger.Log.Info("Learning profile refreshed",
		zap.String("user_id", user.ID),
		zap.String("skill_level", string(user.LearningProfile.SkillLevel)),
		zap.String("content_type", string(user.LearningProfile.PreferredContentType)),
	)
	return user, true, nil
}

// completedCourses 已报名且目录进度为 100 的课程
func completedCourses(activities []model.Activity, courses []model.Course) []string {
	enrolled := EnrolledCourseIDs(activities)
	out := make([]string, 0)
	for _, c := range courses {
		if _, ok := enrolled[c.ID]; ok && c.Progress >= 100 {
			out = append(out, c.ID)
		}
	}
	return out
}

func (s *ProfileService) Insights(ctx context.Context, session *model.Session) (model.BehaviorInsights, bool, error) {
	if session == nil {
		return model.BehaviorInsights{}, false, nil
	}
	var activities []model.Activity
	err := s.Store.Atomically(func() error {
		var err error
		activities, err = s.ActivityRepo.ListByUser(ctx, session.UserID)
		return err
	})
	if err != nil {
		return model.BehaviorInsights{}, true, err
	}
	return AnalyzeBehavior(activities, s.now()), true, nil
}
