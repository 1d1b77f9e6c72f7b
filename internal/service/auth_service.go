package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/badoux/checkmail"
	"go.uber.org/zap"

	"teamforge/internal/dto"
	"teamforge/internal/model"
	"teamforge/internal/pkg/config"
	"teamforge/internal/pkg/crypto"
	"teamforge/internal/pkg/jwt"
	"teamforge/internal/pkg/logger"
	"teamforge/internal/repository"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) (*dto.UserInfo, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Me 根据Token中的身份读取当前用户
	Me(claims *jwt.UserClaims) (*dto.UserInfo, error)
}

type authService struct {
	cfg      *config.AuthConfig
	userRepo repository.UserRepository
}

func NewAuthService(cfg *config.AuthConfig, userRepo repository.UserRepository) AuthService {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (s *authService) Signup(req *dto.SignupRequest) (*dto.UserInfo, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, pkgErrors.ErrInvalidParams
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, pkgErrors.ErrInvalidEmail
	}

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgErrors.ErrEmailExists
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	// 并发注册时由唯一索引兜底, 返回 ErrEmailExists
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("用户注册成功", zap.Int64("user_id", user.ID), zap.String("email", email))
	return toUserInfo(user), nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if pkgErrors.Is(err, pkgErrors.ErrUserNotFound) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		logger.Warn("登录密码错误", zap.String("email", email))
		return nil, pkgErrors.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成Token失败", err)
	}

	logger.Info("用户登录成功", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	return &dto.LoginResponse{
		Token:       token,
		ExpiresIn:   s.cfg.JWT.AccessTokenExpire,
		RedirectURL: fmt.Sprintf(constants.HomeRedirectURL, url.QueryEscape(user.Email)),
		User:        toUserInfo(user),
	}, nil
}

func (s *authService) Me(claims *jwt.UserClaims) (*dto.UserInfo, error) {
	if claims == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindByEmail(claims.Email)
	if err != nil {
		if pkgErrors.Is(err, pkgErrors.ErrUserNotFound) {
			// 账号已被删除, Token仍有效时只返回Token内容
			return &dto.UserInfo{ID: claims.UserID, Email: claims.Email}, nil
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
