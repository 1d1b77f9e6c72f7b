package repository

import (
	"errors"

	"gorm.io/gorm"

	pkgErrors "teamforge/pkg/errors"
)

type QueryOption func(*gorm.DB) *gorm.DB

// WithTeamDetail 预加载角色与成员, 保持创建顺序
func WithTeamDetail() QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Preload("Roles", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort ASC, id ASC") }).
			Preload("Members", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") })
	}
}

// WithComments 预加载评论, 按写入顺序
func WithComments() QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") })
	}
}

func apply(db *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// wrapFind 将记录不存在映射为 notFound, 其余包装为数据库错误
func wrapFind(err error, notFound *pkgErrors.AppError, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, message, err)
}
