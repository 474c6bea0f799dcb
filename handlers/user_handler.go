// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"propman-server/crypto"
	"propman-server/db"
	"propman-server/middlewares"
	"propman-server/passwordcheck"

	"github.com/labstack/echo/v4"
)

// GetUserHandler godoc
// @Summary      Get the authenticated user
// @Description  Returns the profile of the authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} GetUserResponse "User retrieved successfully"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/users/ [get]
func GetUserHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	return c.JSON(http.StatusOK, GetUserResponse{
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		IsAdmin:     user.IsAdmin,
		Message:     "User retrieved successfully",
	})
}

// ChangePasswordHandler godoc
// @Summary      Change the user's password
// @Description  Verifies the current password and replaces it with a new one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        changePasswordRequest  body  ChangePasswordRequest  true  "Change password payload"
// @Success      204 "Password changed successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/users/password [put]
func ChangePasswordHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid change password payload:", err)
		return echo.ErrBadRequest
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "current_password and new_password fields are required",
		}
	}

	newCrypto := crypto.NewCrypto()
	if err := newCrypto.VerifyPassword(req.CurrentPassword, user.Password); err != nil {
		logger.Error("Current password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Current password is incorrect",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("New password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid password: %v", err.Error()),
		}
	}

	hash, err := newCrypto.HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(user).Update("password", hash).Error; err != nil {
		logger.Errorf("Failed to update password: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Password changed successfully")
	return c.NoContent(http.StatusNoContent)
}
