package models

import (
	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	SenderID   uint    `json:"sender" gorm:"index"`
	ReceiverID uint    `json:"receiver" gorm:"index"`
	Content    string  `json:"content" gorm:"type:text"`
	Read       bool    `json:"read" gorm:"default:false"`
	Sender     Profile `json:"-" gorm:"foreignKey:SenderID"`
	Receiver   Profile `json:"-" gorm:"foreignKey:ReceiverID"`
}
