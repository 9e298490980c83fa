package repository

import (
	"time"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) GetByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) Save(u *entity.User) error {
	return r.DB.Save(u).Error
}

func (r *UserRepository) List() ([]entity.User, error) {
	var out []entity.User
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

// IsBlocked is the submission gate; an unknown user counts as blocked.
func (r *UserRepository) IsBlocked(userID uint) (bool, error) {
	var u entity.User
	if err := r.DB.Select("id, is_blocked").First(&u, userID).Error; err != nil {
		return true, err
	}
	return u.IsBlocked, nil
}

func (r *UserRepository) SetBlocked(userID uint, blocked bool) (int64, error) {
	res := r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Update("is_blocked", blocked)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) TouchActivity(userID uint) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Update("last_activity", time.Now()).Error
}

// ---------------- Sessions ----------------

func (r *UserRepository) CreateSession(s *entity.Session) error {
	return r.DB.Create(s).Error
}

func (r *UserRepository) GetSession(token string) (*entity.Session, error) {
	var s entity.Session
	if err := r.DB.Where("token = ?", token).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *UserRepository) DeleteSession(token string) error {
	return r.DB.Where("token = ?", token).Delete(&entity.Session{}).Error
}
