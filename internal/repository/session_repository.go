package repository

import (
	"context"
	"time"

	"learnai_backend/internal/model"
	"learnai_backend/internal/util"
	"learnai_backend/pkg/storage"
)

const sessionsKey = "sessions"

// SessionRepository 保存仍然有效的会话，登出即删除
type SessionRepository struct {
	Store *storage.Store
}

func NewSessionRepository(store *storage.Store) *SessionRepository {
	return &SessionRepository{Store: store}
}

func (r *SessionRepository) load(ctx context.Context) (map[string]model.Session, error) {
	sessions := make(map[string]model.Session)
	if _, err := r.Store.Load(ctx, sessionsKey, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = make(map[string]model.Session)
	}
	return sessions, nil
}

// Create 保存新会话，顺便清理已过期的会话
func (r *SessionRepository) Create(ctx context.Context, session model.Session, now time.Time) error {
	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	for id, s := range sessions {
		if s.Expired(now) {
			delete(sessions, id)
		}
	}
	sessions[session.ID] = session
	return r.Store.Save(ctx, sessionsKey, sessions)
}

func (r *SessionRepository) Find(ctx context.Context, id string) (model.Session, error) {
	sessions, err := r.load(ctx)
	if err != nil {
		return model.Session{}, err
	}
	s, ok := sessions[id]
	if !ok {
		return model.Session{}, util.ErrSessionInvalid
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := sessions[id]; !ok {
		return nil
	}
	delete(sessions, id)
	return r.Store.Save(ctx, sessionsKey, sessions)
}
