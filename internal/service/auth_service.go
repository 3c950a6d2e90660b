package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
	"linkpulse-core/pkg/monitor"
)

// AuthService issues and verifies the authenticated principal. Core
// operations receive the resolved *model.User by parameter; nothing reads
// identity from ambient state.
type AuthService struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register creates an active user.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}
	if count > 0 {
		return nil, errno.ErrUserAlreadyExist
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Status:       model.UserStatusActive,
		Tier:         model.TierNormal,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}

	monitor.Business.UserRegisteredTotal.Inc()
	return &user, nil
}

// Login checks credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errno.ErrUserNotFound
	}
	if err != nil {
		return "", nil, errno.ErrDatabase.WithMessage(err.Error())
	}

	if user.Status == model.UserStatusBanned {
		return "", nil, errno.ErrUserBanned
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, errno.ErrPasswordIncorrect
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(user.ID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, &user, nil
}

// VerifyToken validates a token and loads the principal.
func (s *AuthService) VerifyToken(ctx context.Context, tokenStr string) (*model.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errno.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errno.ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, errno.ErrTokenInvalid
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, errno.ErrUserNotFound
	}
	if user.Status == model.UserStatusBanned {
		return nil, errno.ErrUserBanned
	}
	return &user, nil
}
