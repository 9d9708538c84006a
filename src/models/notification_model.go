package models

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	RecipientID    uint             `json:"recipient" gorm:"index"`
	Type           NotificationType `json:"type" gorm:"type:varchar(40)"`
	RelatedUserID  uint             `json:"related_user,omitempty"`
	RelatedPaperID *uint            `json:"related_paper,omitempty"`
	Read           bool             `json:"read" gorm:"default:false"`
	RelatedUser    Profile          `json:"-" gorm:"foreignKey:RelatedUserID"`
}

type NotificationType string

const (
	NotificationTypeConnectionRequest  NotificationType = "connectionRequest"
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
	NotificationTypeReviewRequested    NotificationType = "reviewRequested"
	NotificationTypeMessageReceived    NotificationType = "messageReceived"
)
