package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
	"learnai_backend/internal/repository"
	"learnai_backend/internal/util"
	"learnai_backend/pkg/logger"
	"learnai_backend/pkg/monitoring"
	"learnai_backend/pkg/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	minPasswordLength  = 6
	maxPasswordBytes   = 72 // bcrypt 只接受 72 字节以内
	defaultStudyTime   = "morning"
	defaultSessionTime = 24 * time.Hour
)

type RegisterInput struct {
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email" binding:"required"`
	Password  string   `json:"password" binding:"required"`
	Interests []string `json:"interests"`
}

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      model.UserProfile `json:"user"`
}

type AuthService struct {
	Store       *storage.Store
	UserRepo    *repository.UserRepository
	SessionRepo *repository.SessionRepository
	Hasher      PasswordHasher
	Cfg         *config.Config
	Now         func() time.Time
}

func NewAuthService(store *storage.Store, userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, hasher PasswordHasher, cfg *config.Config) *AuthService {
	return &AuthService{
		Store:       store,
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Hasher:      hasher,
		Cfg:         cfg,
		Now:         time.Now,
	}
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.User{}, util.NewValidationError("name", "must not be empty")
	}
	email := model.NormalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, util.NewValidationError("email", "invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return model.User{}, util.NewValidationError("password", "must be at least 6 characters")
	}
	if len(in.Password) > maxPasswordBytes {
		return model.User{}, util.NewValidationError("password", "must be at most 72 bytes")
	}

	// 哈希计算较慢，放在状态锁之外
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	now := s.now()
	user := model.User{
		ID:              model.GenerateID("user"),
		Name:            name,
		Email:           email,
		PasswordHash:    hash,
		CreatedAt:       now,
		LearningProfile: model.DefaultLearningProfile(in.Interests),
		Behavior: model.Behavior{
			LastActiveDate:     now,
			PreferredStudyTime: defaultStudyTime,
		},
	}

	err = s.Store.Atomically(func() error {
		return s.UserRepo.Create(ctx, user)
	})
	if err != nil {
		return model.User{}, err
	}

	monitoring.AuthEvents.WithLabelValues("register").Inc()
	logger.Log.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login 校验密码，登记新会话并签发 JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var user model.User
	err := s.Store.Atomically(func() error {
		var err error
		user, err = s.UserRepo.FindByEmail(ctx, email)
		return err
	})
	if errors.Is(err, util.ErrUserNotFound) {
		monitoring.AuthEvents.WithLabelValues("login_failed").Inc()
		return LoginResult{}, util.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !s.Hasher.Verify(user.PasswordHash, password) {
		monitoring.AuthEvents.WithLabelValues("login_failed").Inc()
		return LoginResult{}, util.ErrInvalidCredentials
	}

	now := s.now()
	ttl := s.Cfg.JWT.ExpireTime
	if ttl <= 0 {
		ttl = defaultSessionTime
	}
	session := model.Session{
		ID:        model.GenerateID("session"),
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	err = s.Store.Atomically(func() error {
		// 重新读取，避免覆盖哈希校验期间的其他更新
		current, err := s.UserRepo.FindByID(ctx, user.ID)
		if err != nil {
			return err
		}
		current.Behavior.LastActiveDate = now
		current.Behavior.LoginCount++
		if err := s.UserRepo.Update(ctx, current); err != nil {
			return err
		}
		user = current
		return s.SessionRepo.Create(ctx, session, now)
	})
	if err != nil {
		return LoginResult{}, err
	}

	token, err := util.GenerateJWT(user, session, s.Cfg.JWT.Secret)
	if err != nil {
		return LoginResult{}, err
	}

	monitoring.AuthEvents.WithLabelValues("login").Inc()
	logger.Log.Info("User logged in", zap.String("user_id", user.ID), zap.String("session_id", session.ID))
	return LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user.Profile()}, nil
}

// Logout 没有会话时什么也不做
func (s *AuthService) Logout(ctx context.Context, session *model.Session) error {
	if session == nil {
		return nil
	}
	err := s.Store.Atomically(func() error {
		return s.SessionRepo.Delete(ctx, session.ID)
	})
	if err != nil {
		return err
	}
	monitoring.AuthEvents.WithLabelValues("logout").Inc()
	return nil
}

// ParseToken 按服务时钟校验 token 的 exp/iat
func (s *AuthService) ParseToken(token string) (*util.Claims, error) {
	return util.ParseJWT(token, s.Cfg.JWT.Secret, jwt.WithTimeFunc(s.now))
}

// ResolveSession 将 JWT claims 转换为仍然有效的会话
func (s *AuthService) ResolveSession(ctx context.Context, claims *util.Claims) (*model.Session, error) {
	if claims == nil || claims.SessionID == "" {
		return nil, util.ErrSessionInvalid
	}
	var session model.Session
	err := s.Store.Atomically(func() error {
		var err error
		session, err = s.SessionRepo.Find(ctx, claims.SessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.UserID || session.Expired(s.now()) {
		return nil, util.ErrSessionInvalid
	}
	return &session, nil
}

// CurrentUser 返回会话对应的用户，没有会话时 ok 为 false
func (s *AuthService) CurrentUser(ctx context.Context, session *model.Session) (user model.User, ok bool, err error) {
	if session == nil {
		return model.User{}, false, nil
	}
	err = s.Store.Atomically(func() error {
		user, err = s.UserRepo.FindByID(ctx, session.UserID)
		return err
	})
	if err != nil {
		return model.User{}, false, err
	}
	return user, true, nil
}
