package services

import (
	"errors"
	"time"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/Bespalov-Gleb/Food-bot/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrBadCredentials = errors.New("invalid username or password")

// AuthService issues stateless access JWTs plus a persisted refresh
// session per login. Session state lives in the store, never in
// process-wide maps.
type AuthService struct {
	Users      *repository.UserRepository
	JWTSecret  string
	JWTTTL     time.Duration
	RefreshTTL time.Duration
}

func NewAuthService(users *repository.UserRepository, secret string, jwtTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{Users: users, JWTSecret: secret, JWTTTL: jwtTTL, RefreshTTL: refreshTTL}
}

type RegisterIn struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) Register(in *RegisterIn) (*entity.User, error) {
	if _, err := s.Users.GetByUsername(in.Username); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         entity.RoleUser,
		LastActivity: time.Now(),
	}
	if err := s.Users.Create(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(username, password string) (*entity.User, *TokenPair, error) {
	u, err := s.Users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBadCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrBadCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	_ = s.Users.TouchActivity(u.ID)
	return u, pair, nil
}

// Refresh rotates the refresh session and returns a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	sess, err := s.Users.GetSession(refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.Users.DeleteSession(refreshToken)
		return nil, ErrNotFound
	}
	u, err := s.Users.GetByID(sess.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.Users.DeleteSession(refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(u)
}

func (s *AuthService) Logout(refreshToken string) error {
	return s.Users.DeleteSession(refreshToken)
}

func (s *AuthService) issueTokens(u *entity.User) (*TokenPair, error) {
	access, err := utils.GenerateToken(u.ID, u.Role, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, err
	}
	refresh := uuid.NewString()
	sess := entity.Session{
		Token:     refresh,
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(s.RefreshTTL),
	}
	if err := s.Users.CreateSession(&sess); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
