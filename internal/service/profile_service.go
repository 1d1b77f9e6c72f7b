package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teamforge/internal/adapter/storage"
	"teamforge/internal/core/leveling"
	"teamforge/internal/dto"
	"teamforge/internal/model"
	"teamforge/internal/pkg/logger"
	"teamforge/internal/repository"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

type ProfileService interface {
	Get(email string) (*dto.ProfileResponse, error)
	// Update 更新姓名与资料, 并按已有积分重算等级
	Update(email string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadPhoto(ctx context.Context, email string, file *UploadFile) (*dto.UploadResponse, error)
}

type profileService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	uploader    storage.Uploader
}

func NewProfileService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	uploader storage.Uploader,
) ProfileService {
	return &profileService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		uploader:    uploader,
	}
}

func (s *profileService) Get(email string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByEmail(email)
	if err != nil {
		if !pkgErrors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, err
		}
		// 尚未保存过资料
		profile = &model.Profile{Email: email, Position: constants.PositionBeginner}
	}

	skills, err := s.profileRepo.ListSkills(email)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		skills = profile.Skills
	}

	return s.toResponse(user, profile, skills), nil
}

func (s *profileService) Update(email string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if _, err := s.userRepo.FindByEmail(email); err != nil {
		return nil, err
	}
	if req.Points != nil {
		logger.Debug("忽略客户端提交的积分", zap.String("email", email), zap.Int("points", *req.Points))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		profiles := s.profileRepo.WithTx(tx)

		if name := strings.TrimSpace(req.Name); name != "" {
			if err := users.UpdateName(email, name); err != nil {
				return err
			}
		}

		profile, err := profiles.FirstOrCreate(email)
		if err != nil {
			return err
		}

		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.Education != nil {
			profile.Education = datatypes.NewJSONSlice(req.Education)
		}
		if req.Projects != nil {
			profile.Projects = datatypes.NewJSONSlice(req.Projects)
		}
		if req.ProfilePic != nil {
			profile.ProfilePic = strings.TrimSpace(*req.ProfilePic)
		}
		if req.Skills != nil {
			profile.Skills = datatypes.NewJSONSlice(cleanList(req.Skills))
			if err := profiles.ReplaceSkills(email, req.Skills); err != nil {
				return err
			}
		}

		result := leveling.Compute(profile.Points)
		profile.Level = result.Level
		profile.Position = result.Position

		return profiles.Save(profile)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("用户资料已更新", zap.String("email", email))
	return s.Get(email)
}

func (s *profileService) UploadPhoto(ctx context.Context, email string, file *UploadFile) (*dto.UploadResponse, error) {
	if file == nil || file.Body == nil {
		return nil, pkgErrors.ErrMissingFile
	}

	key := storage.ObjectKey(constants.StorageProfilePicPrefix, email, file.Filename)
	fileURL, err := upload(ctx, s.uploader, key, file)
	if err != nil {
		logger.Error("头像上传失败", zap.String("email", email), zap.String("key", key), zap.Error(err))
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profiles := s.profileRepo.WithTx(tx)
		if _, err := profiles.FirstOrCreate(email); err != nil {
			return err
		}
		return profiles.UpdateProfilePic(email, fileURL)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("头像已更新", zap.String("email", email), zap.String("url", fileURL))
	return &dto.UploadResponse{URL: fileURL}, nil
}

func (s *profileService) toResponse(user *model.User, profile *model.Profile, skills []string) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Name:       user.Name,
		Email:      user.Email,
		Bio:        profile.Bio,
		ProfilePic: avatarOrDefault(profile.ProfilePic, user.Email),
		Education:  nonNilStrings(profile.Education),
		Skills:     nonNilStrings(skills),
		Projects:   nonNilStrings(profile.Projects),
		Points:     profile.Points,
		Level:      profile.Level,
		Position:   profile.Position,
		Badge:      leveling.BadgeFor(profile.Level),
	}
}

// avatarOrDefault 未设置头像时使用默认头像
func avatarOrDefault(pic, email string) string {
	if pic != "" {
		return pic
	}
	return fmt.Sprintf(constants.DefaultAvatarURL, url.QueryEscape(email))
}

// cleanList 去除首尾空白并跳过空项
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
