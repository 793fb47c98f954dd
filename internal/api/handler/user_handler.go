package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wophi/wophi-api/internal/api/metrics"
	"github.com/wophi/wophi-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /v1/users.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate signups"
// @Param        body             body      createUserRequest  true   "Signup details"
// @Success      201              {object}  ports.CreatedUser
// @Failure      400              {object}  map[string]any
// @Failure      500              {object}  map[string]any
// @Router       /v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		SocialName:           req.SocialName,
		BornDate:             req.BornDate,
		MotherName:           req.MotherName,
		Username:             req.Username,
		Email:                req.Email,
		Phone:                req.Phone,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		IdempotencyKey:       c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// Me handles GET /v1/users/me.
//
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserData
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	identity, token, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.FindByID(c.Request().Context(), identity.AlmaID, token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /v1/users/me.
//
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  ports.UserData
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /v1/users/me [patch]
func (h *UserHandler) Update(c echo.Context) error {
	_, token, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateUser(c.Request().Context(), token, ports.UpdateProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		SocialName: req.SocialName,
		BornDate:   req.BornDate,
		MotherName: req.MotherName,
		Username:   req.Username,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/me.
//
// @Summary      Delete the authenticated user's account
// @Tags         users
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/users/me [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	identity, token, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), token, identity.AlmaID); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
