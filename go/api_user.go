package storeserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
	userhttpmapper "github.com/sportsstore/go-gin-store-server/internal/domains/users/adapters/http/mapper"
	userports "github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

// UserAPI wires HTTP transport with the users bounded context service. Login
// also folds the caller's anonymous cart into their user cart.
type UserAPI struct {
	service userports.Service
	carts   cartports.Service
}

// NewUserAPI creates a UserAPI backed by the provided services.
func NewUserAPI(service userports.Service, carts cartports.Service) UserAPI {
	return UserAPI{service: service, carts: carts}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string              `json:"token"`
	User  userhttpmapper.User `json:"user"`
}

// Post /v1/users
// Registers a new account.
func (api *UserAPI) Register(c *gin.Context) {
	var payload userhttpmapper.User
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	// Accounts never self-assign admin.
	payload.Admin = false
	user, err := userhttpmapper.ToDomainUser(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.Register(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(saved))
}

// Post /v1/users/login
// Checks credentials, opens a session, and merges the anonymous cart (from
// X-Session-ID) into the user cart before responding.
func (api *UserAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ctx := c.Request.Context()
	user, token, err := api.service.Login(ctx, payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if sessionToken := strings.TrimSpace(c.GetHeader(HeaderSessionID)); sessionToken != "" && api.carts != nil {
		session, sErr := cartdomain.SessionIdentity(sessionToken)
		userIdentity, uErr := cartdomain.UserIdentity(user.ID)
		if sErr == nil && uErr == nil {
			if err := api.carts.Merge(ctx, session, userIdentity); err != nil {
				respondServiceError(c, err)
				return
			}
		}
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, User: userhttpmapper.FromDomainUser(user)})
}

// Post /v1/users/logout
// Revokes the caller's session token.
func (api *UserAPI) Logout(c *gin.Context) {
	token := strings.TrimSpace(c.GetHeader(HeaderAuthToken))
	if err := api.service.Logout(c.Request.Context(), token); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/users/:username
// Fetches a profile; callers only see their own unless they are admins.
func (api *UserAPI) GetUserByName(c *gin.Context) {
	caller, ok := authenticatedUser(c.Request.Context(), c, api.service)
	if !ok {
		return
	}
	username := c.Param("username")
	if caller.Username != username && !caller.Admin {
		respondServiceError(c, userports.ErrNotFound)
		return
	}
	user, err := api.service.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Put /v1/users/:username
// Updates a profile; callers only change their own unless they are admins.
func (api *UserAPI) UpdateUser(c *gin.Context) {
	caller, ok := authenticatedUser(c.Request.Context(), c, api.service)
	if !ok {
		return
	}
	username := c.Param("username")
	if caller.Username != username && !caller.Admin {
		respondServiceError(c, userports.ErrNotFound)
		return
	}
	var payload userhttpmapper.User
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !caller.Admin {
		payload.Admin = false
	}
	updated, err := userhttpmapper.ToDomainUser(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.Update(c.Request.Context(), username, updated)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(saved))
}

// Delete /v1/users/:username
// Deletes an account (admin only).
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if _, ok := adminUser(c.Request.Context(), c, api.service); !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/admin/users
// Lists accounts (admin only).
func (api *UserAPI) ListUsers(c *gin.Context) {
	if _, ok := adminUser(c.Request.Context(), c, api.service); !ok {
		return
	}
	users, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUsers(users))
}
