// Package service contains the business logic sitting between HTTP handlers
// and the repositories.
package service

import (
	"context"
	"strings"

	"github.com/MayankPrasher/draftly-backend/internal/models"
	"github.com/MayankPrasher/draftly-backend/internal/repository"
)

// wordsPerMinute is the reading speed used for the readTime estimate.
const wordsPerMinute = 200

// PostService implements post creation, listing, deletion and like toggling.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	AuthorID      uint
	Title         string
	Content       string
	Expert        string
	Category      string
	Tags          string // comma separated, as submitted in the form
	FeaturedImage string // already-uploaded CDN URL, may be empty
	IsPublished   bool
}

// ListPostsInput selects a page of the public feed.
type ListPostsInput struct {
	Limit  int
	Offset int
}

// PostPage is one page of a listing together with the totals the API
// pagination meta is built from.
type PostPage struct {
	Posts []*models.Post
	Total int64
}

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	IsLiked    bool
	LikesCount int
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 100
	const minContentLen = 10
	const maxExpertLen = 200

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) < minContentLen {
		return nil, models.NewValidationError("Content must be at least 10 characters")
	}
	if len(in.Expert) > maxExpertLen {
		return nil, models.NewValidationError("Expert too long (max 200 characters)")
	}

	featuredImage := in.FeaturedImage
	if featuredImage == "" {
		featuredImage = models.DefaultFeaturedImage
	}

	post := &models.Post{
		Title:         title,
		Content:       content,
		Expert:        strings.TrimSpace(in.Expert),
		AuthorID:      in.AuthorID,
		FeaturedImage: featuredImage,
		Tags:          ParseTags(in.Tags),
		Category:      models.ParseCategory(in.Category),
		IsPublished:   in.IsPublished,
		ReadTime:      estimateReadTime(content),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	posts, total, err := s.postRepo.ListPublished(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total}, nil
}

// ListUserPosts returns all of the author's posts, drafts included. The
// endpoint has no pagination; the caller always sees their complete list.
func (s *PostService) ListUserPosts(ctx context.Context, authorID uint) (*PostPage, error) {
	posts, total, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total}, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post after checking the requester owns it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("Not authorized to delete this blog")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's like on a post and returns the resulting
// state with a fresh count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{IsLiked: !isLiked, LikesCount: post.LikesCount}, nil
}

// ParseTags splits a comma separated tag string into trimmed, lowercased,
// deduplicated tags. Empty input yields the "general" default.
func ParseTags(raw string) []string {
	var tags []string
	seen := map[string]struct{}{}
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	if len(tags) == 0 {
		return []string{"general"}
	}
	return tags
}

// estimateReadTime returns the reading time in minutes, rounded up, with a
// one minute floor for any non-empty content.
func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
