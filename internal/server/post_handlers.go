package server

import (
	"errors"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// postRequest carries the create and edit form fields.
type postRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// Index handles GET /
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	payload := fiber.Map{
		"posts": toPostResponses(posts),
		"msg":   c.Query("msg"),
	}
	if user := currentUser(c); user != nil {
		payload["user"] = user.Username
	}
	return c.JSON(payload)
}

// CreatePage handles GET /create
func (s *Server) CreatePage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "create",
		"msg":  c.Query("msg"),
	})
}

// CreatePost handles POST /create
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithMessage(c, "/create", "Invalid request body")
	}

	post, err := s.postService.CreatePost(c.Context(), currentUser(c), req.Title, req.Content)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
			return redirectWithMessage(c, "/create", appErr.Message)
		}
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		"post_id", post.ID, "author_id", post.AuthorID)
	return redirectWithMessage(c, "/", "")
}

// AuthorPosts handles GET /user/:username
func (s *Server) AuthorPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	author, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	if author == nil {
		return respondError(c, models.NewNoSuchUserError(username))
	}

	posts, err := s.postService.ListPostsByAuthor(c.Context(), author.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"author": author.Username,
		"posts":  toPostResponses(posts),
	})
}

// ShowPost handles GET /post/:id
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":       toPostResponse(post),
		"allow_edit": post.OwnedBy(currentUser(c)),
		"msg":        c.Query("msg"),
	})
}

// EditPage handles GET /edit/:id; owner-only.
func (s *Server) EditPage(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.AuthorizeEdit(c.Context(), currentUser(c), id)
	if err != nil {
		return s.denyOrRespond(c, id, err)
	}

	return c.JSON(fiber.Map{
		"page": "edit",
		"post": toPostResponse(post),
	})
}

// EditPost handles POST /edit/:id; owner-only.
func (s *Server) EditPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithMessage(c, fmt.Sprintf("/edit/%d", id), "Invalid request body")
	}

	post, err := s.postService.UpdatePost(c.Context(), currentUser(c), id, req.Title, req.Content)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
			return redirectWithMessage(c, fmt.Sprintf("/edit/%d", id), appErr.Message)
		}
		return s.denyOrRespond(c, id, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post updated", "post_id", post.ID)
	return redirectWithMessage(c, fmt.Sprintf("/post/%d", post.ID), "")
}

// DeletePost handles POST /delete/:id; owner-only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUser(c), id); err != nil {
		return s.denyOrRespond(c, id, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post deleted", "post_id", id)
	return redirectWithMessage(c, "/", "")
}

// denyOrRespond turns an ownership denial into the redirect-with-reason flow
// and leaves every other error as a plain JSON response.
func (s *Server) denyOrRespond(c *fiber.Ctx, postID uint, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeUnauthorized {
		middleware.EditDenials.WithLabelValues("not_owner").Inc()
		middleware.Logger.InfoContext(c.UserContext(), "edit denied",
			"post_id", postID, "reason", appErr.Message)
		return redirectWithMessage(c, fmt.Sprintf("/post/%d", postID), appErr.Message)
	}
	return respondError(c, err)
}
