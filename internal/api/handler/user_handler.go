package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fichedesk/dashboard/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type advisorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListAdvisors returns the users fiches can be assigned to.
//
// @Summary      List advisors
// @Tags         users
// @Produce      json
// @Success      200  {array}   advisorResponse
// @Failure      401  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListAdvisors(c echo.Context) error {
	if _, err := sessionUser(c); err != nil {
		return err
	}

	users, err := h.userService.ListAdvisors(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]advisorResponse, len(users))
	for i, u := range users {
		resp[i] = advisorResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return c.JSON(http.StatusOK, resp)
}
