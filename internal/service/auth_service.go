package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/outlinedev/outline/internal/model"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
	"github.com/outlinedev/outline/internal/pkg/jwt"
	"github.com/outlinedev/outline/internal/pkg/password"
	"github.com/outlinedev/outline/internal/pkg/timeutil"
	"github.com/outlinedev/outline/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) Register(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return nil, "", appErr.ErrInvalid
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", appErr.ErrConflict
	} else if !errors.Is(err, appErr.ErrNotFound) {
		return nil, "", err
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

type ProfileUpdateInput struct {
	Name          string
	University    string
	Program       string
	Language      string
	CitationStyle string
	VoiceID       string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(input.Name)
	user.University = strings.TrimSpace(input.University)
	user.Program = strings.TrimSpace(input.Program)
	user.Language = strings.TrimSpace(input.Language)
	user.CitationStyle = strings.TrimSpace(input.CitationStyle)
	user.VoiceID = strings.TrimSpace(input.VoiceID)
	user.Mtime = timeutil.NowUnix()
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
