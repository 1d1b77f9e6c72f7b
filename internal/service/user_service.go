package service

import (
	"strings"

	"github.com/samber/lo"

	"teamforge/internal/dto"
	"teamforge/internal/model"
	"teamforge/internal/repository"
	pkgErrors "teamforge/pkg/errors"
)

const searchLimit = 50

type UserService interface {
	// Search 按姓名模糊搜索用户
	Search(keyword string) ([]*dto.UserSearchResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Search(keyword string) ([]*dto.UserSearchResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, pkgErrors.ErrInvalidParams
	}

	rows, err := s.repo.SearchByName(keyword, searchLimit)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(u *model.UserSummary, _ int) *dto.UserSearchResponse {
		return &dto.UserSearchResponse{
			Name:       u.Name,
			Email:      u.Email,
			ProfilePic: avatarOrDefault(u.ProfilePic, u.Email),
		}
	}), nil
}
