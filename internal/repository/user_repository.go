package repository

import (
	"errors"
	"strings"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts the user, relying on the unique username index. Two
// concurrent registrations race on the constraint; the loser gets
// ErrDuplicateUser.
func (r *UserRepository) Create(user *model.User) error {
	err := r.DB.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return util.ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetDevice records deviceID as the account's sole active device,
// superseding whatever was there.
func (r *UserRepository) SetDevice(userID uint, deviceID string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("device_id", deviceID).
		Error
}

// ClearDevice clears the active device only when it still matches, so a
// logout from a superseded session cannot kick the newer one.
func (r *UserRepository) ClearDevice(userID uint, deviceID string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ? AND device_id = ?", userID, deviceID).
		Update("device_id", nil).
		Error
}

func (r *UserRepository) ListParticipants() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", model.Participant).
		Order("username ASC").
		Find(&users).Error
	return users, err
}
