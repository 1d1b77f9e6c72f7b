package repository

import (
	"errors"

	"gorm.io/gorm"

	"teamforge/internal/model"
	pkgErrors "teamforge/pkg/errors"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int64) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	ExistsByEmail(email string) (bool, error)
	UpdateName(email, name string) error
	SearchByName(keyword string, limit int) ([]*model.UserSummary, error)
	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgErrors.ErrEmailExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建用户失败", err)
	}
	return nil
}

func (r *userRepository) FindByID(id int64) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, wrapFind(err, pkgErrors.ErrUserNotFound, "查询用户失败")
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapFind(err, pkgErrors.ErrUserNotFound, "查询用户失败")
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询用户失败", err)
	}
	return count > 0, nil
}

func (r *userRepository) UpdateName(email, name string) error {
	err := r.db.Model(&model.User{}).Where("email = ?", email).Update("name", name).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新用户名失败", err)
	}
	return nil
}

// SearchByName 按姓名模糊搜索, 一次LEFT JOIN带出头像
func (r *userRepository) SearchByName(keyword string, limit int) ([]*model.UserSummary, error) {
	var rows []*model.UserSummary
	err := r.db.Table(model.UserTableName+" AS u").
		Select("u.name AS name, u.email AS email, COALESCE(p.profile_pic, '') AS profile_pic").
		Joins("LEFT JOIN "+model.ProfileTableName+" AS p ON p.email = u.email").
		Where("u.name LIKE ?", "%"+keyword+"%").
		Order("u.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "搜索用户失败", err)
	}
	return rows, nil
}
