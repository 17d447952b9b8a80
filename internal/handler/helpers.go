package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/b4os-dev/classboard-api/internal/models"
)

func userNameFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_name"); v != nil {
		if name, ok := v.(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// canActFor reports whether the caller may read data scoped to the given
// student: privileged roles always, everyone else only for themselves.
func canActFor(c *fiber.Ctx, student string) bool {
	if models.IsPrivileged(userRoleFromContext(c)) {
		return true
	}
	return userNameFromContext(c) == student
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
