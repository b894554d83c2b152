package server

import (
	"github.com/gofiber/fiber/v2"
)

// Stats handles GET /stats. Lengths are measured in characters over each
// post's title and content together.
func (s *Server) Stats(c *fiber.Ctx) error {
	summary, ok, err := s.postService.LengthSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	if !ok {
		return c.JSON(fiber.Map{
			"posts_exist": false,
		})
	}

	return c.JSON(fiber.Map{
		"posts_exist":    true,
		"average_length": summary.Mean,
		"median_length":  summary.Median,
		"max_length":     summary.Max,
		"min_length":     summary.Min,
		"total_length":   summary.Sum,
	})
}
