package service

import (
	"errors"
	"strings"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// LoginResult carries the token plus whether this login kicked a session on
// another device; the client surfaces that to the user.
type LoginResult struct {
	Token                      string
	User                       *model.User
	PreviousSessionInvalidated bool
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register creates the account without logging it in. Uniqueness rides on
// the username index; the pre-check only exists for a friendlier error on
// the common path.
func (s *AuthService) Register(username, password string, role model.UserRole) (*model.User, error) {
	username = NormalizeUsername(username)

	if role != model.Participant && role != model.Admin {
		return nil, util.ErrInvalidRole
	}

	if _, err := s.UserRepo.FindByUsername(username); err == nil {
		return nil, util.ErrDuplicateUser
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and records deviceID as the account's only
// active device. A token minted for a previously active device stops
// working the moment the update lands, since the middleware compares
// against the stored device on every request.
func (s *AuthService) Login(username, password, deviceID string) (*LoginResult, error) {
	user, err := s.UserRepo.FindByUsername(NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	superseded := user.DeviceID != nil && *user.DeviceID != "" && *user.DeviceID != deviceID

	if err := s.UserRepo.SetDevice(user.ID, deviceID); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, deviceID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:                      token,
		User:                       user,
		PreviousSessionInvalidated: superseded,
	}, nil
}

// Logout clears the active device if it still matches the caller's.
// Idempotent: logging out an already-cleared or superseded session
// succeeds without effect.
func (s *AuthService) Logout(userID uint, deviceID string) error {
	return s.UserRepo.ClearDevice(userID, deviceID)
}

// VerifyDevice checks token claims against the stored active device. Called
// fresh on every authenticated request so supersession takes effect
// immediately for in-flight sessions.
func (s *AuthService) VerifyDevice(claims *util.Claims) error {
	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return util.ErrSessionExpired
		}
		return err
	}
	if user.DeviceID == nil || *user.DeviceID != claims.DeviceID {
		return util.ErrSessionExpired
	}
	return nil
}
