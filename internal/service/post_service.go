package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teamforge/internal/adapter/storage"
	"teamforge/internal/core/leveling"
	"teamforge/internal/dto"
	"teamforge/internal/model"
	"teamforge/internal/pkg/logger"
	"teamforge/internal/pkg/metrics"
	"teamforge/internal/repository"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

type PostService interface {
	// Create 发帖并为作者加积分
	Create(email string, req *dto.CreatePostRequest) (*dto.PostCreatedResponse, error)
	UploadMedia(ctx context.Context, email string, file *UploadFile) (*dto.UploadResponse, error)
	ListByAuthor(email string) ([]*dto.PostResponse, error)
	Feed() ([]*dto.PostResponse, error)
	Like(postID int64) error
	Comment(email string, req *dto.CommentPostRequest) error
}

type postService struct {
	db          *gorm.DB
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	uploader    storage.Uploader
}

func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	uploader storage.Uploader,
) PostService {
	return &postService{
		db:          db,
		postRepo:    postRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		uploader:    uploader,
	}
}

func (s *postService) Create(email string, req *dto.CreatePostRequest) (*dto.PostCreatedResponse, error) {
	content := strings.TrimSpace(req.Content)
	images := cleanList(req.Images)
	var videoURL *string
	if req.VideoURL != nil && strings.TrimSpace(*req.VideoURL) != "" {
		videoURL = lo.ToPtr(strings.TrimSpace(*req.VideoURL))
	}

	post := &model.Post{
		Email:    email,
		Content:  content,
		Images:   datatypes.NewJSONSlice(images),
		VideoURL: videoURL,
	}

	var level leveling.Result
	err := s.db.Transaction(func(tx *gorm.DB) error {
		profiles := s.profileRepo.WithTx(tx)

		if err := s.postRepo.WithTx(tx).Create(post); err != nil {
			return err
		}
		if _, err := profiles.FirstOrCreate(email); err != nil {
			return err
		}
		if err := profiles.AddPoints(email, constants.PointsPerPost); err != nil {
			return err
		}

		profile, err := profiles.FindByEmail(email)
		if err != nil {
			return err
		}
		level = leveling.Compute(profile.Points)
		return profiles.UpdateLevel(email, level.Level, level.Position)
	})
	if err != nil {
		return nil, err
	}

	metrics.PostCreated()
	logger.Info("帖子已发布",
		zap.Int64("post_id", post.ID),
		zap.String("email", email),
		zap.Int("level", level.Level))

	return &dto.PostCreatedResponse{PostID: post.ID}, nil
}

func (s *postService) UploadMedia(ctx context.Context, email string, file *UploadFile) (*dto.UploadResponse, error) {
	if file == nil || file.Body == nil {
		return nil, pkgErrors.ErrMissingFile
	}

	prefix := constants.StoragePostImagePrefix
	if storage.IsVideo(file.ContentType) {
		prefix = constants.StoragePostVideoPrefix
	}

	key := storage.ObjectKey(prefix, email, file.Filename)
	fileURL, err := upload(ctx, s.uploader, key, file)
	if err != nil {
		logger.Error("媒体上传失败", zap.String("email", email), zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &dto.UploadResponse{URL: fileURL}, nil
}

func (s *postService) ListByAuthor(email string) ([]*dto.PostResponse, error) {
	posts, err := s.postRepo.ListByEmail(email)
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts), nil
}

func (s *postService) Feed() ([]*dto.PostResponse, error) {
	posts, err := s.postRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts), nil
}

func (s *postService) Like(postID int64) error {
	affected, err := s.postRepo.IncrementLikes(postID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return pkgErrors.ErrPostNotFound
	}
	return nil
}

func (s *postService) Comment(email string, req *dto.CommentPostRequest) error {
	text := strings.TrimSpace(req.Comment)
	if text == "" {
		return pkgErrors.ErrInvalidParams
	}

	exists, err := s.postRepo.Exists(req.PostID)
	if err != nil {
		return err
	}
	if !exists {
		return pkgErrors.ErrPostNotFound
	}

	label := strings.TrimSpace(req.User)
	if label == "" {
		label = email
		if user, err := s.userRepo.FindByEmail(email); err == nil {
			label = user.Name
		}
	}

	return s.postRepo.AddComment(&model.PostComment{
		PostID:  req.PostID,
		Email:   email,
		User:    label,
		Comment: text,
	})
}

func toPostResponses(posts []*model.Post) []*dto.PostResponse {
	return lo.Map(posts, func(p *model.Post, _ int) *dto.PostResponse {
		return dto.NewPostResponse(p)
	})
}
