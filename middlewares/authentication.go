// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"propman-server/apiauth"
	"propman-server/commons"
	"propman-server/counters"
	"propman-server/db"
	"propman-server/models"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type AuthMethod int

const (
	AuthMethodSession AuthMethod = iota
	AuthMethodAPIKey
)

var (
	verifier *apiauth.Verifier
	gate     *apiauth.Gate
	recorder *apiauth.Recorder
)

// InitAuthPipeline wires the API key pipeline against the live database
// connection and the configured counter backend. Must run after db.InitDB.
func InitAuthPipeline() {
	store := &apiauth.GormStore{DB: db.Conn}
	verifier = apiauth.NewVerifier(store)
	gate = apiauth.NewGate(counters.NewFromEnv())
	recorder = &apiauth.Recorder{Usage: store, Keys: store}
	commons.Logger.Debug("API key auth pipeline initialized")
}

func VerifyAuthMiddleware(authMethods ...AuthMethod) func(echo.HandlerFunc) echo.HandlerFunc {
	if len(authMethods) == 0 {
		authMethods = []AuthMethod{AuthMethodSession}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			isMethodAllowed := func(method AuthMethod) bool {
				return slices.Contains(authMethods, method)
			}

			authHeader := c.Request().Header.Get("Authorization")

			if isMethodAllowed(AuthMethodAPIKey) && strings.HasPrefix(authHeader, apiauth.Scheme+" ") {
				return handleAPIKey(c, next)
			}

			if isMethodAllowed(AuthMethodSession) {
				if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
					sessionToken := after

					token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (any, error) {
						if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
							return nil, errors.New("unexpected signing method")
						}
						return []byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key")), nil
					})

					if err == nil && token.Valid {
						claims, ok := token.Claims.(jwt.MapClaims)
						if ok {
							sessionID := claims["sid"]
							userID := claims["uid"]
							tokenID := claims["jti"]

							session := models.Session{}
							err = db.Conn.Where("id = ? AND user_id = ? AND token = ?", sessionID, userID, tokenID).First(&session).Error
							if err == nil && session.ExpiresAt != nil && !session.ExpiresAt.Before(time.Now()) {
								now := time.Now()
								session.LastUsedAt = &now

								if err := db.Conn.Save(&session).Error; err != nil {
									logger.Error("Failed to update session LastUsedAt: ", err)
								}

								c.Set("session", session)
								c.Set("auth_method", AuthMethodSession)
								return next(c)
							}
						}
					}
				}
			}

			logger.Error("Authentication failed.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired authentication token",
			}
		}
	}
}

// handleAPIKey runs the full key pipeline: verify the credential, admit
// against quota and capabilities, run the handler, then record the call.
// Every request that clears verification is recorded, whatever the
// handler outcome.
func handleAPIKey(c echo.Context, next echo.HandlerFunc) error {
	req := c.Request()
	clientIP := apiauth.ClientIP(req)

	rk, err := verifier.Verify(req.Header.Get("Authorization"), clientIP)
	if err != nil {
		return httpErrorFor(err)
	}
	if rk == nil {
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token",
		}
	}

	if err := gate.Admit(req.Context(), rk, req.Method); err != nil {
		return httpErrorFor(err)
	}

	c.Set("resolved_key", rk)
	c.Set("auth_method", AuthMethodAPIKey)

	handlerErr := next(c)

	recorder.Record(rk, apiauth.RequestInfo{
		Method:     req.Method,
		Path:       req.URL.Path,
		UserAgent:  req.UserAgent(),
		ClientIP:   clientIP,
		StatusCode: statusOf(c, handlerErr),
		FinishedAt: time.Now(),
	})

	return handlerErr
}

func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

func httpErrorFor(err error) error {
	var authErr *apiauth.Error
	if !errors.As(err, &authErr) {
		commons.Logger.Errorf("API key verification failed: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Something went wrong, please try again later.",
		}
	}

	body := echo.Map{
		"error":   string(authErr.Reason),
		"message": authErr.Message,
	}
	if authErr.Reason == apiauth.ReasonRateLimitExceeded {
		body["limit"] = authErr.Limit
		body["period"] = authErr.Window.String()
	}
	return &echo.HTTPError{
		Code:    authErr.Status,
		Message: body,
	}
}

func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	authMethod := c.Get("auth_method")

	switch authMethod {
	case AuthMethodSession:
		if session, ok := c.Get("session").(models.Session); ok {
			var user models.User
			err := db.Conn.Where("id = ?", session.UserID).First(&user).Error
			if err != nil {
				return nil, err
			}
			return &user, nil
		}
	case AuthMethodAPIKey:
		if rk, ok := c.Get("resolved_key").(*apiauth.ResolvedKey); ok {
			user := rk.User
			return &user, nil
		}
	}

	return nil, errors.New("no authenticated user found")
}

func GetAuthenticatedUserID(c echo.Context) (uint, error) {
	user, err := GetAuthenticatedUser(c)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
