// Package auth serves admin login, logout and the current-admin endpoint.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sashkashishka/balakanyna-sub000"
	"github.com/sashkashishka/balakanyna-sub000/middlewares"
	"github.com/sashkashishka/balakanyna-sub000/pkg/cookie"
	"github.com/sashkashishka/balakanyna-sub000/repository"
)

// CodeInvalidCredentials is returned for an unknown name or a wrong password.
const CodeInvalidCredentials = "INVALID_CREDENTIALS"

// AdminStore is satisfied by *repository.Queries.
type AdminStore interface {
	AdminByName(ctx context.Context, name string) (repository.Admin, error)
}

type Handler struct {
	admins AdminStore
}

func New(admins AdminStore) *Handler {
	return &Handler{admins: admins}
}

func (h *Handler) Routes(r *balakanyna.Router) {
	r.Post("/api/admin/auth/login", balakanyna.HandlerFunc(h.login))
	r.Post("/api/admin/auth/logout", balakanyna.HandlerFunc(h.logout))
	r.Get("/api/admin/auth/me", middlewares.Auth(), balakanyna.HandlerFunc(h.me))
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type meResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var okResponse = map[string]bool{"ok": true}

func (h *Handler) login(c *balakanyna.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Name == "" || req.Password == "" {
		return balakanyna.ErrBadRequest("name and password are required",
			balakanyna.WithErrorCode(balakanyna.CodeInvalidBody))
	}

	admin, err := h.admins.AdminByName(c.Context(), req.Name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return invalidCredentials()
	case err != nil:
		return err
	case !admin.CheckPassword(req.Password):
		return invalidCredentials()
	}

	token, err := c.JWT().Sign(balakanyna.Payload{
		"sub":  strconv.FormatInt(admin.ID, 10),
		"name": admin.Name,
	})
	if err != nil {
		return balakanyna.ErrInternal("failed to issue token", balakanyna.WithError(err))
	}

	maxAge := int(c.Config().JWT.ExpirationTime.Seconds())
	if err := c.Cookie().SetCookie(middlewares.TokenCookie, token, cookie.WithMaxAge(maxAge)); err != nil {
		return err
	}

	c.Logger().InfoContext(c.Context(), "admin logged in", "admin_id", admin.ID)
	return c.JSON(http.StatusOK, okResponse)
}

func (h *Handler) logout(c *balakanyna.Context) error {
	if err := c.Cookie().DeleteCookie(middlewares.TokenCookie); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

func (h *Handler) me(c *balakanyna.Context) error {
	claims, ok := middlewares.Claims(c)
	if !ok {
		return balakanyna.ErrUnauthorized("unauthorized", balakanyna.WithErrorCode(balakanyna.CodeUnauthorized))
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return balakanyna.ErrUnauthorized("invalid token subject", balakanyna.WithErrorCode(balakanyna.CodeUnauthorized))
	}
	name, _ := claims["name"].(string)

	return c.JSON(http.StatusOK, meResponse{ID: id, Name: name})
}

func invalidCredentials() error {
	return balakanyna.ErrUnauthorized("invalid name or password",
		balakanyna.WithErrorCode(CodeInvalidCredentials))
}
