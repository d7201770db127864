package server

import (
	"github.com/MayankPrasher/draftly-backend/internal/cache"
	"github.com/MayankPrasher/draftly-backend/internal/models"
	"github.com/MayankPrasher/draftly-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// blogListResponse is the cached shape of a public listing page.
type blogListResponse struct {
	Blogs []*models.Post `json:"blogs"`
	Meta  paginationMeta `json:"meta"`
}

type paginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalBlogs  int64 `json:"totalBlogs"`
}

// GetBlogs handles GET /api/v1/blogs
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	page, limit := parsePage(c)

	key := cache.PostListKey(page, limit)
	var cached blogListResponse
	if cache.GetJSON(c.UserContext(), key, &cached) {
		return c.JSON(fiber.Map{
			"success": true,
			"msg":     "Successfully fetching all blogs",
			"blogs":   cached.Blogs,
			"meta":    cached.Meta,
		})
	}

	result, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	resp := blogListResponse{
		Blogs: result.Posts,
		Meta: paginationMeta{
			CurrentPage: page,
			TotalPages:  totalPages(result.Total, limit),
			TotalBlogs:  result.Total,
		},
	}
	cache.SetJSON(c.UserContext(), key, resp, cache.PostListTTL)

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "Successfully fetching all blogs",
		"blogs":   resp.Blogs,
		"meta":    resp.Meta,
	})
}

// GetMyBlogs handles GET /api/v1/blogs/mine
func (s *Server) GetMyBlogs(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	result, err := s.postService.ListUserPosts(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "Successfully fetched all blogs of user",
		"blogs":   result.Posts,
		"meta": fiber.Map{
			"totalBlogs": result.Total,
		},
	})
}

// CreateBlog handles POST /api/v1/blogs (multipart form)
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	featuredImage := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		if s.uploader == nil {
			return models.RespondWithAppError(c,
				models.NewValidationError("Image uploads are not enabled"))
		}
		if file.Size == 0 {
			return models.RespondWithAppError(c,
				models.NewValidationError("Empty image file"))
		}
		if file.Size > maxMultipartFileSize {
			return models.RespondWithAppError(c,
				models.NewValidationError("Image too large (max 5MB)"))
		}

		f, err := file.Open()
		if err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
		defer f.Close()

		url, upErr := s.uploader.Upload(c.UserContext(), f, file.Filename)
		if upErr != nil {
			return models.RespondWithAppError(c, upErr)
		}
		featuredImage = url
	}

	isPublished := true
	if v := c.FormValue("isPublished"); v == "false" {
		isPublished = false
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:      userID,
		Title:         c.FormValue("title"),
		Content:       c.FormValue("content"),
		Expert:        c.FormValue("expert"),
		Category:      c.FormValue("category"),
		Tags:          c.FormValue("tags"),
		FeaturedImage: featuredImage,
		IsPublished:   isPublished,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"msg":     "New blog created",
		"blog":    post,
	})
}

// GetBlog handles GET /api/v1/blogs/:id
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "Single blog fetched",
		"blog":    post,
	})
}

// UpdateBlog handles PUT /api/v1/blogs/:id. The operation is a documented
// no-op: the route exists and is authorized, but performs no mutation.
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "Blog update is not supported yet",
	})
}

// DeleteBlog handles DELETE /api/v1/blogs/:id
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "Blog Deleted Successfully",
	})
}

// ToggleLikeBlog handles PATCH /api/v1/blogs/like-blog/:id
func (s *Server) ToggleLikeBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.ToggleLike(c.UserContext(), userID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	msg := "Blog liked"
	if !result.IsLiked {
		msg = "Blog UnLiked"
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"msg":        msg,
		"isLiked":    result.IsLiked,
		"likesCount": result.LikesCount,
	})
}

// maxMultipartFileSize mirrors the media package cap; checked here first so an
// oversize upload fails before the file is read.
const maxMultipartFileSize = 5 << 20
