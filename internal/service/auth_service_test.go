package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
	"learnai_backend/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

func TestRegisterDefaults(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	user, err := env.auth.Register(context.Background(), RegisterInput{
		Name:      "  Ada  ",
		Email:     "Ada@Example.com",
		Password:  "secret123",
		Interests: []string{"AI", " ", "ai", "Data"},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Name != "Ada" || user.Email != "ada@example.com" {
		t.Fatalf("user = %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Fatalf("password not hashed")
	}
	lp := user.LearningProfile
	if lp.SkillLevel != model.LevelBeginner || lp.LearningStyle != model.StyleVisual || lp.PreferredContentType != model.ContentVideo {
		t.Fatalf("profile = %+v", lp)
	}
	if len(lp.Interests) != 2 || lp.Interests[0] != "AI" || lp.Interests[1] != "Data" {
		t.Fatalf("interests = %v", lp.Interests)
	}
	if user.Progress != (model.Progress{}) || user.Behavior.PreferredStudyTime != "morning" {
		t.Fatalf("user = %+v", user)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := env.auth.Register(ctx, RegisterInput{Name: "B", Email: "DUP@example.com", Password: "another1"})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"empty name", RegisterInput{Name: " ", Email: "a@example.com", Password: "secret123"}, "name"},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "secret123"}, "email"},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "12345"}, "password"},
		{"password over 72 bytes", RegisterInput{Name: "A", Email: "a@example.com", Password: strings.Repeat("p", 80)}, "password"},
		{"multibyte password over 72 bytes", RegisterInput{Name: "A", Email: "a@example.com", Password: strings.Repeat("密", 25)}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(context.Background(), tt.input)
			var ve *util.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("err = %v, want validation error on %s", err, tt.field)
			}
		})
	}
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	env.login(t, "known@example.com")

	if _, err := env.auth.Login(ctx, "known@example.com", "wrong-password"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := env.auth.Login(ctx, "unknown@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v", err)
	}
}

func TestLoginUpdatesBehavior(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	session := env.login(t, "count@example.com")

	env.now = env.now.Add(2 * time.Hour)
	result, err := env.auth.Login(ctx, "COUNT@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.Behavior.LoginCount != 2 || !result.User.Behavior.LastActiveDate.Equal(env.now) {
		t.Fatalf("behavior = %+v", result.User.Behavior)
	}
	if !result.ExpiresAt.Equal(env.now.Add(env.cfg.JWT.ExpireTime)) {
		t.Fatalf("expiresAt = %v", result.ExpiresAt)
	}

	// 第一个会话已过期
	claims := &util.Claims{UserID: session.UserID, SessionID: session.ID}
	if _, err := env.auth.ResolveSession(ctx, claims); !errors.Is(err, util.ErrSessionInvalid) {
		t.Fatalf("expired session err = %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	session := env.login(t, "logout@example.com")

	if err := env.auth.Logout(ctx, session); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	claims := &util.Claims{UserID: session.UserID, SessionID: session.ID}
	if _, err := env.auth.ResolveSession(ctx, claims); !errors.Is(err, util.ErrSessionInvalid) {
		t.Fatalf("ResolveSession after logout err = %v", err)
	}
	if err := env.auth.Logout(ctx, nil); err != nil {
		t.Fatalf("Logout(nil): %v", err)
	}
}

func TestResolveSessionRejectsForeignUser(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	session := env.login(t, "owner@example.com")
	claims := &util.Claims{UserID: "user_someone_else", SessionID: session.ID}
	if _, err := env.auth.ResolveSession(context.Background(), claims); !errors.Is(err, util.ErrSessionInvalid) {
		t.Fatalf("err = %v, want ErrSessionInvalid", err)
	}
}

func TestCurrentUserAnonymous(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	_, ok, err := env.auth.CurrentUser(context.Background(), nil)
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestParseTokenUsesServiceClock(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, RegisterInput{Name: "Clock", Email: "clock@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := env.auth.Login(ctx, "clock@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// 固定时钟早于当前时间，按墙钟校验会判定过期
	claims, err := env.auth.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("ParseToken at issue time: %v", err)
	}
	if claims.SessionID == "" {
		t.Fatalf("claims = %+v", claims)
	}

	env.now = env.now.Add(env.cfg.JWT.ExpireTime + time.Minute)
	if _, err := env.auth.ParseToken(result.Token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("err after expiry = %v, want ErrTokenExpired", err)
	}
}
