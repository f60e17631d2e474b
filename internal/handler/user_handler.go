package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bankcore/internal/errors"
	"bankcore/internal/service"
)

// UserHandler handles user listing endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// FetchCustomers godoc
// @Summary List all users with the customer role
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /fetch [get]
func (h *UserHandler) FetchCustomers(c echo.Context) error {
	users, err := h.userService.ListCustomers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}
