// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string
type NotificationPriority string

const (
	NotifyInfo            NotificationType = "info"
	NotifyLeaseExpiring   NotificationType = "lease_expiring"
	NotifyLeaseExpired    NotificationType = "lease_expired"
	NotifyPaymentReceived NotificationType = "payment_received"
	NotifyPaymentOverdue  NotificationType = "payment_overdue"
	NotifyTenantAdded     NotificationType = "tenant_added"
)

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

type Notification struct {
	ID       uint                 `gorm:"primaryKey"`
	Title    string               `gorm:"size:255;not null"`
	Message  string               `gorm:"type:text;not null"`
	Type     NotificationType     `gorm:"size:50;index"`
	Priority NotificationPriority `gorm:"size:20;default:'normal'"`

	IsRead bool `gorm:"default:false;index"`
	ReadAt *time.Time

	RelatedObjectType string `gorm:"size:50"`
	RelatedObjectID   *uint
	ActionURL         string `gorm:"size:500"`

	ExpiresAt *time.Time
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	UserID    uint           `gorm:"index"`
	User      User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &Notification{})
}
