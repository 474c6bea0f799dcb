// SPDX-License-Identifier: GPL-3.0-only

package notifications

import "propman-server/models"

// Event is one domain occurrence worth telling the back office about. It
// is fanned out as in-app notification rows and, when a broker is
// configured, mirrored to the message bus.
type Event struct {
	Type     models.NotificationType
	Priority models.NotificationPriority
	Title    string
	Message  string

	// RelatedObjectType and RelatedObjectID point at the record the
	// event concerns, e.g. "lease" and the lease ID.
	RelatedObjectType string
	RelatedObjectID   *uint
	ActionURL         string
}
