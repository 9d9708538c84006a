package models

import (
	"gorm.io/gorm"
)

// Connection is the stored form of a connection request. PairLowID/PairHighID
// hold the two participant ids in ascending order so the composite unique index
// enforces at most one row per unordered pair.
type Connection struct {
	gorm.Model
	SenderID   uint             `json:"sender" gorm:"index"`
	ReceiverID uint             `json:"receiver" gorm:"index"`
	PairLowID  uint             `json:"-" gorm:"uniqueIndex:idx_connection_pair"`
	PairHighID uint             `json:"-" gorm:"uniqueIndex:idx_connection_pair"`
	Status     ConnectionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Message    string           `json:"message" gorm:"type:text"`
	Sender     Profile          `json:"-" gorm:"foreignKey:SenderID"`
	Receiver   Profile          `json:"-" gorm:"foreignKey:ReceiverID"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// BeforeCreate normalizes the pair columns from sender and receiver.
func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.SenderID < c.ReceiverID {
		c.PairLowID, c.PairHighID = c.SenderID, c.ReceiverID
	} else {
		c.PairLowID, c.PairHighID = c.ReceiverID, c.SenderID
	}
	return nil
}
