package repository

import (
	"strings"

	"gorm.io/gorm"

	"teamforge/internal/model"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

type ProfileRepository interface {
	FindByEmail(email string) (*model.Profile, error)
	// FirstOrCreate 不存在时创建空资料
	FirstOrCreate(email string) (*model.Profile, error)
	Save(profile *model.Profile) error
	AddPoints(email string, delta int) error
	UpdateLevel(email string, level int, position string) error
	UpdateProfilePic(email, url string) error
	ReplaceSkills(email string, skills []string) error
	ListSkills(email string) ([]string, error)
	// FindInBatches 分批遍历全部资料
	FindInBatches(batchSize int, fn func(profiles []*model.Profile) error) error
	WithTx(tx *gorm.DB) ProfileRepository
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) WithTx(tx *gorm.DB) ProfileRepository {
	return &profileRepository{db: tx}
}

func (r *profileRepository) FindByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, wrapFind(err, pkgErrors.ErrRecordNotFound, "查询用户资料失败")
	}
	return &profile, nil
}

func (r *profileRepository) FirstOrCreate(email string) (*model.Profile, error) {
	profile := model.Profile{
		Email:    email,
		Position: constants.PositionBeginner,
	}
	err := r.db.Where(model.Profile{Email: email}).FirstOrCreate(&profile).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建用户资料失败", err)
	}
	return &profile, nil
}

func (r *profileRepository) Save(profile *model.Profile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "保存用户资料失败", err)
	}
	return nil
}

// AddPoints 原子累加积分
func (r *profileRepository) AddPoints(email string, delta int) error {
	err := r.db.Model(&model.Profile{}).
		Where("email = ?", email).
		Update("points", gorm.Expr("points + ?", delta)).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新积分失败", err)
	}
	return nil
}

func (r *profileRepository) UpdateLevel(email string, level int, position string) error {
	err := r.db.Model(&model.Profile{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"level": level, "position": position}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新等级失败", err)
	}
	return nil
}

func (r *profileRepository) UpdateProfilePic(email, url string) error {
	err := r.db.Model(&model.Profile{}).
		Where("email = ?", email).
		Update("profile_pic", url).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新头像失败", err)
	}
	return nil
}

// ReplaceSkills 删除后重建技能行, 空白项跳过
func (r *profileRepository) ReplaceSkills(email string, skills []string) error {
	if err := r.db.Where("email = ?", email).Delete(&model.Skill{}).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清理技能失败", err)
	}

	rows := make([]*model.Skill, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			rows = append(rows, &model.Skill{Email: email, Skill: s})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "保存技能失败", err)
	}
	return nil
}

func (r *profileRepository) ListSkills(email string) ([]string, error) {
	var skills []string
	err := r.db.Model(&model.Skill{}).Where("email = ?", email).Order("id ASC").Pluck("skill", &skills).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询技能失败", err)
	}
	return skills, nil
}

func (r *profileRepository) FindInBatches(batchSize int, fn func(profiles []*model.Profile) error) error {
	var batch []*model.Profile
	result := r.db.Model(&model.Profile{}).FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		return fn(batch)
	})
	if result.Error != nil {
		if appErr, ok := pkgErrors.As(result.Error); ok {
			return appErr
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "遍历用户资料失败", result.Error)
	}
	return nil
}
