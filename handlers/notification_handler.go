// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"propman-server/db"
	"propman-server/middlewares"
	"propman-server/models"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func notificationDetails(n *models.Notification) NotificationDetails {
	return NotificationDetails{
		ID:                n.ID,
		Title:             n.Title,
		Message:           n.Message,
		Type:              string(n.Type),
		Priority:          string(n.Priority),
		IsRead:            n.IsRead,
		ReadAt:            formatTimePtr(n.ReadAt),
		RelatedObjectType: n.RelatedObjectType,
		RelatedObjectID:   n.RelatedObjectID,
		ActionURL:         n.ActionURL,
		ExpiresAt:         formatTimePtr(n.ExpiresAt),
		CreatedAt:         n.CreatedAt.Format(timeFormat),
	}
}

func findUserNotification(c echo.Context, userID uint) (*models.Notification, error) {
	notificationID, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "notification_id must be a numeric identifier",
		}
	}

	notification := models.Notification{}
	err = db.Conn.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Notification not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch notification: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &notification, nil
}

// GetAllNotificationsHandler godoc
// @Summary      List notifications
// @Description  Returns the user's notifications, newest first, optionally
// @Description  filtered to unread only.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread    query  bool  false  "Only unread notifications"
// @Param        page      query  int   false  "Page number (default 1)"
// @Param        page_size query  int   false  "Page size (default 10, max 100)"
// @Success      200 {object} NotificationListResponse "Notifications retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/notifications/ [get]
func GetAllNotificationsHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	page, pageSize := parsePagination(c)

	query := db.Conn.Model(&models.Notification{}).Where("user_id = ?", userID)
	if c.QueryParam("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count notifications: %v", err)
		return echo.ErrInternalServerError
	}

	var items []models.Notification
	if err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error; err != nil {
		logger.Errorf("Failed to fetch notifications: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]NotificationDetails, 0, len(items))
	for i := range items {
		details = append(details, notificationDetails(&items[i]))
	}

	return c.JSON(http.StatusOK, NotificationListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "Notifications retrieved successfully",
	})
}

// GetUnreadCountHandler godoc
// @Summary      Get unread notification count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UnreadCountResponse "Unread count retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/notifications/unread-count [get]
func GetUnreadCountHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	var count int64
	if err := db.Conn.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		logger.Errorf("Failed to count unread notifications: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, UnreadCountResponse{
		UnreadCount: count,
		Message:     "Unread count retrieved successfully",
	})
}

// MarkNotificationReadHandler godoc
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        notification_id  path  int  true  "Notification ID"
// @Success      200 {object} NotificationDetails "Notification marked read"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/notifications/{notification_id}/read [post]
func MarkNotificationReadHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	notification, err := findUserNotification(c, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := db.Conn.Model(notification).Updates(map[string]any{
		"is_read": true,
		"read_at": &now,
	}).Error; err != nil {
		logger.Errorf("Failed to mark notification read: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, notificationDetails(notification))
}

// MarkNotificationUnreadHandler godoc
// @Summary      Mark a notification unread
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        notification_id  path  int  true  "Notification ID"
// @Success      200 {object} NotificationDetails "Notification marked unread"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/notifications/{notification_id}/unread [post]
func MarkNotificationUnreadHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	notification, err := findUserNotification(c, userID)
	if err != nil {
		return err
	}

	if err := db.Conn.Model(notification).Updates(map[string]any{
		"is_read": false,
		"read_at": nil,
	}).Error; err != nil {
		logger.Errorf("Failed to mark notification unread: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, notificationDetails(notification))
}
