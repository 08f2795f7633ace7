package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clothing-store/internal/auth"
	"github.com/spec-kit/clothing-store/internal/service"
	apperrors "github.com/spec-kit/clothing-store/pkg/util"
	"github.com/spec-kit/clothing-store/pkg/validator"
)

// bind decodes the JSON body into dst and validates its struct tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validator.Validate(dst); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return apperrors.NewValidationError("Validation failed", verr.Fields())
		}
		return apperrors.NewBadRequest(err.Error())
	}
	return nil
}

// pageQuery reads ?page= and ?limit=; the service applies defaults.
func pageQuery(c *fiber.Ctx) service.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return service.Page{Page: page, Limit: limit}
}

func identity(c *fiber.Ctx) (*auth.Identity, error) {
	id, ok := auth.IdentityFromCtx(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Not authorized to access this route")
	}
	return id, nil
}
