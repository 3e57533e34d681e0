package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
	"learnai_backend/internal/repository"
	"learnai_backend/internal/util"
	"learnai_backend/pkg/logger"
	"learnai_backend/pkg/monitoring"
	"learnai_backend/pkg/storage"

	"go.uber.org/zap"
)

const weekWindow = 7 * 24 * time.Hour

type TrackingService struct {
	Store        *storage.Store
	ActivityRepo *repository.ActivityRepository
	UserRepo     *repository.UserRepository
	CourseRepo   *repository.CourseRepository
	Aggregator   ProgressAggregator
	Cfg          *config.Config
	Now          func() time.Time
}

func NewTrackingService(store *storage.Store, activityRepo *repository.ActivityRepository, userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, cfg *config.Config) *TrackingService {
	return &TrackingService{
		Store:        store,
		ActivityRepo: activityRepo,
		UserRepo:     userRepo,
		CourseRepo:   courseRepo,
		Aggregator:   ProgressAggregator{QuizAverageMode: cfg.Progress.QuizAverageMode},
		Cfg:          cfg,
		Now:          time.Now,
	}
}

func (s *TrackingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func validateDetails(t model.ActivityType, d model.ActivityDetails) error {
	if !t.Valid() {
		return util.NewValidationError("type", "unknown activity type "+string(t))
	}
	if d.Score != nil && (*d.Score < 0 || *d.Score > 100 || math.IsNaN(*d.Score)) {
		return util.NewValidationError("details.score", "must be between 0 and 100")
	}
	if d.Hours != nil && (*d.Hours < 0 || math.IsNaN(*d.Hours) || math.IsInf(*d.Hours, 0)) {
		return util.NewValidationError("details.hours", "must not be negative")
	}
	if d.ContentType != "" && !d.ContentType.Valid() {
		return util.NewValidationError("details.contentType", "unknown content type "+string(d.ContentType))
	}
	return nil
}

// Record 追加一条活动并同步更新进度。没有会话时 recorded 为 false
func (s *TrackingService) Record(ctx context.Context, session *model.Session, t model.ActivityType, d model.ActivityDetails) (activity model.Activity, recorded bool, err error) {
	if session == nil {
		return model.Activity{}, false, nil
	}
	if err := validateDetails(t, d); err != nil {
		return model.Activity{}, false, err
	}

	err = s.Store.Atomically(func() error {
		activity, err = s.record(ctx, session.UserID, t, d)
		return err
	})
	if err != nil {
		return model.Activity{}, false, err
	}
	return activity, true, nil
}

// record 必须在状态锁内调用
func (s *TrackingService) record(ctx context.Context, userID string, t model.ActivityType, d model.ActivityDetails) (model.Activity, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return model.Activity{}, err
	}

	now := s.now()
	activity := model.Activity{
		ID:        model.GenerateID("activity"),
		UserID:    userID,
		Type:      t,
		Details:   d,
		Timestamp: now,
	}
	if err := s.ActivityRepo.Append(ctx, activity); err != nil {
		return model.Activity{}, err
	}

	user.Progress = s.Aggregator.Apply(user.Progress, t, d)
	user.Behavior.LastActiveDate = now
	if err := s.UserRepo.Update(ctx, user); err != nil {
		// 进度没写成功时撤回活动，两者要么都在要么都不在
		if rbErr := s.ActivityRepo.Remove(ctx, activity.ID); rbErr != nil {
			logger.Log.Error("Activity rollback failed", zap.String("activity_id", activity.ID), zap.Error(rbErr))
			return model.Activity{}, errors.Join(err, rbErr)
		}
		return model.Activity{}, err
	}

	monitoring.ActivitiesRecorded.WithLabelValues(string(t)).Inc()
	logger.Log.Debug("Activity recorded",
		zap.String("user_id", userID),
		zap.String("type", string(t)),
		zap.String("activity_id", activity.ID),
	)
	return activity, nil
}

// Enroll 报名课程，重复报名返回 ErrAlreadyEnrolled
func (s *TrackingService) Enroll(ctx context.Context, session *model.Session, courseID string) (activity model.Activity, recorded bool, err error) {
	if session == nil {
		return model.Activity{}, false, nil
	}

	err = s.Store.Atomically(func() error {
		if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
			return err
		}
		activities, err := s.ActivityRepo.ListByUser(ctx, session.UserID)
		if err != nil {
			return err
		}
		if _, ok := EnrolledCourseIDs(activities)[courseID]; ok {
			return util.ErrAlreadyEnrolled
		}
		activity, err = s.record(ctx, session.UserID, model.ActivityCourseEnrolled, model.ActivityDetails{CourseID: courseID})
		return err
	})
	if err != nil {
		return model.Activity{}, false, err
	}
	return activity, true, nil
}

// EnrolledCourseIDs 课程ID -> 报名活动ID
func EnrolledCourseIDs(activities []model.Activity) map[string]string {
	out := make(map[string]string)
	for _, a := range activities {
		if a.Type == model.ActivityCourseEnrolled && a.Details.CourseID != "" {
			if _, ok := out[a.Details.CourseID]; !ok {
				out[a.Details.CourseID] = a.ID
			}
		}
	}
	return out
}

func (s *TrackingService) activities(ctx context.Context, userID string) ([]model.Activity, error) {
	var activities []model.Activity
	err := s.Store.Atomically(func() error {
		var err error
		activities, err = s.ActivityRepo.ListByUser(ctx, userID)
		return err
	})
	return activities, err
}

func (s *TrackingService) RecentActivities(ctx context.Context, session *model.Session, limit int) ([]model.Activity, bool, error) {
	if session == nil {
		return []model.Activity{}, false, nil
	}
	activities, err := s.activities(ctx, session.UserID)
	if err != nil {
		return nil, true, err
	}
	return RecentActivities(activities, limit), true, nil
}

// RecentActivities 按时间倒序返回前 limit 条，时间相同时后写入的在前。limit<=0 时取 10
func RecentActivities(activities []model.Activity, limit int) []model.Activity {
	if limit <= 0 {
		limit = util.DefaultRecentLimit
	}
	sorted := make([]model.Activity, len(activities))
	// 先反转，这样稳定排序后同一时间的活动仍是最新写入的在前
	for i, a := range activities {
		sorted[len(activities)-1-i] = a
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func (s *TrackingService) WeeklyProgress(ctx context.Context, session *model.Session) (model.WeeklyProgress, bool, error) {
	if session == nil {
		return WeeklyProgress(nil, s.now(), time.Local), false, nil
	}
	activities, err := s.activities(ctx, session.UserID)
	if err != nil {
		return model.WeeklyProgress{}, true, err
	}
	loc, err := s.Cfg.Location()
	if err != nil {
		return model.WeeklyProgress{}, true, err
	}
	return WeeklyProgress(activities, s.now(), loc), true, nil
}

// WeeklyProgress 统计最近7天的活动，按所在时区的星期分组
func WeeklyProgress(activities []model.Activity, now time.Time, loc *time.Location) model.WeeklyProgress {
	weekAgo := now.Add(-weekWindow)
	days := make(map[string]model.DayProgress)
	for _, a := range activities {
		if a.Timestamp.Before(weekAgo) {
			continue
		}
		day := a.Timestamp.In(loc).Format("Mon")
		p := days[day]
		switch a.Type {
		case model.ActivityLessonCompleted:
			p.Lessons++
		case model.ActivityQuizCompleted:
			p.Quizzes++
		case model.ActivityLearningTime:
			if a.Details.Hours != nil {
				p.Hours += *a.Details.Hours
			}
		}
		days[day] = p
	}

	chart := make([]model.DayProgressPoint, 0, len(model.WeekdayLabels))
	for _, label := range model.WeekdayLabels {
		chart = append(chart, model.DayProgressPoint{Day: label, DayProgress: days[label]})
	}
	return model.WeeklyProgress{Days: days, Chart: chart}
}

// Stats 仪表盘展示用的进度数据，学习时长取整
func (s *TrackingService) Stats(ctx context.Context, session *model.Session) (model.ProgressStats, bool, error) {
	if session == nil {
		return model.ProgressStats{}, false, nil
	}
	var user model.User
	err := s.Store.Atomically(func() error {
		var err error
		user, err = s.UserRepo.FindByID(ctx, session.UserID)
		return err
	})
	if err != nil {
		return model.ProgressStats{}, true, err
	}
	p := user.Progress
	return model.ProgressStats{
		CoursesEnrolled:  p.CoursesEnrolled,
		LessonsCompleted: p.LessonsCompleted,
		QuizzesTaken:     p.QuizzesTaken,
		QuizAverage:      p.QuizAverage,
		LearningHours:    roundHalfUp(p.TotalLearningHours),
	}, true, nil
}
