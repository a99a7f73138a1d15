package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VenkateshW22/teamflow-api/internal/api/metrics"
	"github.com/VenkateshW22/teamflow-api/internal/core/domain"
	"github.com/VenkateshW22/teamflow-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// authResponse is the token envelope returned by signin and signup.
type authResponse struct {
	Token    string   `json:"token"`
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func newAuthResponse(res *ports.AuthResult) authResponse {
	return authResponse{
		Token:    res.Token,
		UserID:   res.User.ID,
		Username: res.User.Username,
		Email:    res.User.Email,
		Roles:    res.User.Roles,
	}
}

// SignIn authenticates a user and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(signinResult(err)).Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, newAuthResponse(res))
}

// SignUp registers a user with the default member role and signs them in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.SignUp(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		metrics.SignUpsTotal.WithLabelValues(signupResult(err)).Inc()
		return err
	}
	metrics.SignUpsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, newAuthResponse(res))
}

// Me returns the currently authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func signinResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
		return "invalid_credentials"
	default:
		return "error"
	}
}

func signupResult(err error) string {
	if errors.Is(err, domain.ErrUserExists) {
		return "duplicate"
	}
	return "error"
}
