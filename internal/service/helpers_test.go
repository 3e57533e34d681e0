package service

import (
	"context"
	"testing"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
	"learnai_backend/internal/repository"
	"learnai_backend/pkg/storage"

	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	now   time.Time
	cfg   *config.Config
	store *storage.Store

	auth           *AuthService
	courses        *CourseService
	tracking       *TrackingService
	recommendation *RecommendationService
	feedback       *FeedbackService
	profile        *ProfileService
}

func newTestEnv(t *testing.T, quizMode string) *testEnv {
	t.Helper()
	env := &testEnv{
		now: time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC),
		cfg: &config.Config{
			Server:         config.ServerConfig{Mode: "test"},
			JWT:            config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour},
			Storage:        config.StorageConfig{Type: "memory", Namespace: "test"},
			Progress:       config.ProgressConfig{QuizAverageMode: quizMode},
			Recommendation: config.RecommendationConfig{Limit: DefaultRecommendationLimit},
			Feedback:       config.FeedbackConfig{RecentWindow: DefaultFeedbackWindow},
			Timezone:       "UTC",
		},
	}
	env.store = storage.NewStore(storage.NewMemoryProvider(), env.cfg.Storage.Namespace)
	clock := func() time.Time { return env.now }

	users := repository.NewUserRepository(env.store)
	sessions := repository.NewSessionRepository(env.store)
	courses := repository.NewCourseRepository(env.store)
	activities := repository.NewActivityRepository(env.store)

	env.auth = NewAuthService(env.store, users, sessions, NewBcryptHasher(bcrypt.MinCost), env.cfg)
	env.auth.Now = clock
	env.courses = NewCourseService(env.store, courses, env.cfg)
	env.tracking = NewTrackingService(env.store, activities, users, courses, env.cfg)
	env.tracking.Now = clock
	env.recommendation = NewRecommendationService(env.store, users, courses, env.cfg)
	env.feedback = NewFeedbackService(env.store, users, activities, env.cfg)
	env.feedback.Now = clock
	env.profile = NewProfileService(env.store, users, activities, courses)
	env.profile.Now = clock

	if err := env.courses.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return env
}

// login 注册并登录一个用户，返回解析后的会话
func (env *testEnv) login(t *testing.T, email string, interests ...string) *model.Session {
	t.Helper()
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, RegisterInput{Name: "Learner", Email: email, Password: "secret123", Interests: interests}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := env.auth.Login(ctx, email, "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := env.auth.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	session, err := env.auth.ResolveSession(ctx, claims)
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	return session
}

func (env *testEnv) user(t *testing.T, session *model.Session) model.User {
	t.Helper()
	user, ok, err := env.auth.CurrentUser(context.Background(), session)
	if err != nil || !ok {
		t.Fatalf("CurrentUser: ok=%v err=%v", ok, err)
	}
	return user
}

func score(v float64) *float64 { return &v }

func hours(v float64) *float64 { return &v }
