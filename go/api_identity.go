package storeserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	userdomain "github.com/sportsstore/go-gin-store-server/internal/domains/users/domain"
	userports "github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

// Clients identify themselves with one or both of these headers: an opaque
// shopping session id minted by the client, and a login token from
// /v1/users/login. A valid login token wins, so the same request path works
// before and after authentication.
const (
	HeaderSessionID = "X-Session-ID"
	HeaderAuthToken = "X-Auth-Token"
)

var errNoIdentity = errors.New("missing X-Session-ID or X-Auth-Token header")

// requestIdentity resolves the cart identity of the caller. Invalid or
// expired auth tokens fall back to the session id rather than failing, so a
// stale login does not lock a shopper out of their anonymous cart.
func requestIdentity(ctx context.Context, c *gin.Context, users userports.Service) (cartdomain.Identity, bool) {
	if token := strings.TrimSpace(c.GetHeader(HeaderAuthToken)); token != "" && users != nil {
		if user, err := users.Resolve(ctx, token); err == nil {
			if identity, err := cartdomain.UserIdentity(user.ID); err == nil {
				return identity, true
			}
		}
	}
	if session := strings.TrimSpace(c.GetHeader(HeaderSessionID)); session != "" {
		if identity, err := cartdomain.SessionIdentity(session); err == nil {
			return identity, true
		}
	}
	respondError(c, http.StatusBadRequest, errNoIdentity)
	return cartdomain.Identity{}, false
}

// authenticatedUser resolves the login token or fails with 401.
func authenticatedUser(ctx context.Context, c *gin.Context, users userports.Service) (*userdomain.User, bool) {
	token := strings.TrimSpace(c.GetHeader(HeaderAuthToken))
	if token == "" || users == nil {
		respondError(c, http.StatusUnauthorized, errors.New("login required"))
		return nil, false
	}
	user, err := users.Resolve(ctx, token)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return user, true
}

// adminUser resolves the login token and requires an admin account.
func adminUser(ctx context.Context, c *gin.Context, users userports.Service) (*userdomain.User, bool) {
	user, ok := authenticatedUser(ctx, c, users)
	if !ok {
		return nil, false
	}
	if !user.Admin {
		respondError(c, http.StatusForbidden, errors.New("admin access required"))
		return nil, false
	}
	return user, true
}
