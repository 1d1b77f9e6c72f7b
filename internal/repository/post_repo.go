package repository

import (
	"gorm.io/gorm"

	"teamforge/internal/model"
	pkgErrors "teamforge/pkg/errors"
)

type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id int64, opts ...QueryOption) (*model.Post, error)
	Exists(id int64) (bool, error)
	ListByEmail(email string) ([]*model.Post, error)
	ListAll() ([]*model.Post, error)
	// IncrementLikes 原子加一, 返回受影响行数
	IncrementLikes(id int64) (int64, error)
	AddComment(comment *model.PostComment) error
	WithTx(tx *gorm.DB) PostRepository
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Omit("Comments").Create(post).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建帖子失败", err)
	}
	return nil
}

func (r *postRepository) FindByID(id int64, opts ...QueryOption) (*model.Post, error) {
	var post model.Post
	if err := apply(r.db, opts).First(&post, id).Error; err != nil {
		return nil, wrapFind(err, pkgErrors.ErrPostNotFound, "查询帖子失败")
	}
	return &post, nil
}

func (r *postRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询帖子失败", err)
	}
	return count > 0, nil
}

func (r *postRepository) ListByEmail(email string) ([]*model.Post, error) {
	var posts []*model.Post
	err := WithComments()(r.db).
		Where("email = ?", email).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询帖子列表失败", err)
	}
	return posts, nil
}

func (r *postRepository) ListAll() ([]*model.Post, error) {
	var posts []*model.Post
	err := WithComments()(r.db).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询动态失败", err)
	}
	return posts, nil
}

func (r *postRepository) IncrementLikes(id int64) (int64, error) {
	result := r.db.Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "点赞失败", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *postRepository) AddComment(comment *model.PostComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "评论失败", err)
	}
	return nil
}
