package api

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-market/internal/model"
	"campus-market/internal/storage"

	"github.com/rs/zerolog"
)

// Session keeps the signed-in user's token and record in storage, where the
// API client's bearer interceptor picks the token up.
type Session struct {
	store  storage.Store
	auth   *AuthAPI
	logger zerolog.Logger
}

// NewSession creates a session backed by store.
func NewSession(store storage.Store, auth *AuthAPI, logger zerolog.Logger) *Session {
	return &Session{
		store:  store,
		auth:   auth,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Login authenticates and persists the result.
func (s *Session) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates an account and persists the result.
func (s *Session) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	resp, err := s.auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Adopt stores a token obtained out of band (such as an OAuth callback),
// then loads and persists the matching user.
func (s *Session) Adopt(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, model.ErrMissingToken
	}
	if err := s.store.Set(ctx, storage.TokenKey, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.discard(ctx)
		return nil, err
	}
	if err := s.saveUser(ctx, *user); err != nil {
		s.discard(ctx)
		return nil, err
	}
	return user, nil
}

// Save stores token and user.
func (s *Session) Save(ctx context.Context, token string, user model.User) error {
	if token == "" {
		return model.ErrMissingToken
	}
	if err := s.store.Set(ctx, storage.TokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.saveUser(ctx, user); err != nil {
		s.discard(ctx)
		return err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("session saved")
	return nil
}

// discard removes a token stored without a matching user record.
func (s *Session) discard(ctx context.Context) {
	if err := storage.ClearCredentials(context.WithoutCancel(ctx), s.store); err != nil {
		s.logger.Error().Err(err).Msg("failed to discard partial session")
	}
}

func (s *Session) saveUser(ctx context.Context, user model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, storage.UserKey, string(data)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// Current returns the stored user, or nil when nobody is signed in.
func (s *Session) Current(ctx context.Context) (*model.User, error) {
	raw, ok, err := s.store.Get(ctx, storage.UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable user record")
		return nil, nil
	}
	return &user, nil
}

// Logout clears the stored credentials.
func (s *Session) Logout(ctx context.Context) error {
	if err := storage.ClearCredentials(ctx, s.store); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info().Msg("session cleared")
	return nil
}
