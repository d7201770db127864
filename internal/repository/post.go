// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"github.com/MayankPrasher/draftly-backend/internal/cache"
	"github.com/MayankPrasher/draftly-backend/internal/models"
	"github.com/MayankPrasher/draftly-backend/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// listColumns excludes content so listings stay light; the full body is only
// loaded for single-post reads.
var listColumns = []string{
	"id", "title", "expert", "author_id", "featured_image", "tags", "category",
	"likes_count", "is_published", "read_time", "created_at", "updated_at",
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, int64, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Create", "posts")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		observability.RecordErrorInContext(ctx, err)
		return models.NewInternalError(err)
	}
	cache.InvalidatePrefix(ctx, cache.PostListPrefix)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByID", "posts")
	defer span.End()

	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog")
		}
		observability.RecordErrorInContext(ctx, err)
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ListPublished", "posts")
	defer span.End()

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("is_published = ?", true).
		Count(&total).Error; err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Preload("Author", authorColumns).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// ListByAuthor returns every post by the author regardless of publish state
// and without pagination, while total only counts published ones. The listing
// endpoint surfaces drafts to their owner but the count mirrors the public feed.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, int64, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ListByAuthor", "posts")
	defer span.End()

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ? AND is_published = ?", authorID, true).
		Count(&total).Error; err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Preload("Author", authorColumns).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// Delete removes the post together with its like and saved rows in one
// transaction so no rows are left referencing a missing post.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Delete", "posts")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return models.NewInternalError(err)
	}
	cache.InvalidatePrefix(ctx, cache.PostListPrefix)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the like row and bumps the denormalized counter in the same
// transaction. ON CONFLICT DO NOTHING absorbs concurrent double-likes; the
// counter only moves when a row was actually inserted.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Like", "likes")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&models.Like{UserID: userID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return models.NewInternalError(err)
	}
	cache.InvalidatePrefix(ctx, cache.PostListPrefix)
	return nil
}

// Unlike removes the like row and decrements the counter, flooring at zero so
// a drifted counter can never go negative.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Unlike", "likes")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr(
				"CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return models.NewInternalError(err)
	}
	cache.InvalidatePrefix(ctx, cache.PostListPrefix)
	return nil
}

// authorColumns limits the preloaded author to public profile fields.
func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "profile_picture")
}
