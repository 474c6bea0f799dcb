// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"fmt"
	"propman-server/commons"
	"propman-server/models"

	"gorm.io/gorm"
)

// Publish fans the event out to every admin user as an in-app
// notification and mirrors it to the message broker when one is
// configured. An unread notification with the same type and related
// object is not duplicated.
func Publish(conn *gorm.DB, event Event) error {
	if event.Priority == "" {
		event.Priority = models.PriorityNormal
	}

	var admins []models.User
	if err := conn.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		return fmt.Errorf("failed to fetch notification recipients: %w", err)
	}

	for _, admin := range admins {
		query := conn.Model(&models.Notification{}).
			Where("user_id = ? AND type = ? AND is_read = ?", admin.ID, event.Type, false)
		if event.RelatedObjectID != nil {
			query = query.Where("related_object_type = ? AND related_object_id = ?", event.RelatedObjectType, *event.RelatedObjectID)
		} else {
			query = query.Where("title = ?", event.Title)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for duplicate notification: %w", err)
		}
		if count > 0 {
			continue
		}

		notification := models.Notification{
			Title:             event.Title,
			Message:           event.Message,
			Type:              event.Type,
			Priority:          event.Priority,
			RelatedObjectType: event.RelatedObjectType,
			RelatedObjectID:   event.RelatedObjectID,
			ActionURL:         event.ActionURL,
			UserID:            admin.ID,
		}
		if err := conn.Create(&notification).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
	}

	if err := mirrorToBroker(event); err != nil {
		// The in-app rows are the system of record; the bus mirror is
		// best-effort.
		commons.Logger.Errorf("Failed to mirror event to broker: %v", err)
	}

	return nil
}
