package server

import (
	"errors"
	"net/url"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// localsUserKey is the fiber locals key holding the resolved *models.User.
const localsUserKey = "currentUser"

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// currentUser returns the acting user resolved by WithUser, or nil for an
// anonymous visitor.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

// parseID extracts the post ID route parameter as a positive uint.
// A malformed or non-positive ID addresses no possible post, so it is a 404
// rather than a 400. On failure it writes the response and returns
// errResponseWritten; callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params("id")))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// redirectWithMessage issues a 303 to location carrying a human-readable
// message in the msg query parameter. The landing page echoes it back to
// the visitor.
func redirectWithMessage(c *fiber.Ctx, location, msg string) error {
	target := location
	if msg != "" {
		target = location + "?msg=" + url.QueryEscape(msg)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// httpStatusFor maps an application error code to its HTTP status.
func httpStatusFor(code string) int {
	switch code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeConflict:
		return fiber.StatusConflict
	case models.CodeUnauthenticated, models.CodeInvalidCredentials:
		return fiber.StatusUnauthorized
	case models.CodeUnauthorized:
		return fiber.StatusForbidden
	case models.CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error response matching err's code.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, httpStatusFor(models.CodeOf(err)), err)
}

// postResponse is the wire shape of a post.
type postResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

func toPostResponse(post *models.Post) postResponse {
	return postResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author.Username,
		CreatedAt: post.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

func toPostResponses(posts []*models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostResponse(post))
	}
	return out
}
