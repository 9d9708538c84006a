package models

import (
	"time"

	"gorm.io/gorm"
)

type Paper struct {
	gorm.Model
	AuthorID      uint     `json:"author" gorm:"index"`
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract" gorm:"type:text"`
	Keywords      []string `json:"keywords" gorm:"serializer:json"`
	PublishedYear int      `json:"published_year"`
	CitationCount int      `json:"citation_count"`
	FileURL       string   `json:"file_url"`
	FileName      string   `json:"file_name"`
	FileSize      int64    `json:"file_size"`
	Reviews       []Review `json:"reviews" gorm:"foreignKey:PaperID"`
	Author        Profile  `json:"-" gorm:"foreignKey:AuthorID"`
}

type PaperDto struct {
	ID            uint        `json:"_id"`
	Author        ProfileDto  `json:"author"`
	Title         string      `json:"title"`
	Abstract      string      `json:"abstract"`
	Keywords      []string    `json:"keywords"`
	PublishedYear int         `json:"published_year"`
	CitationCount int         `json:"citation_count"`
	FileURL       string      `json:"file_url,omitempty"`
	Reviews       []ReviewDto `json:"reviews"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type Review struct {
	gorm.Model
	PaperID    uint    `json:"paper_id" gorm:"index"`
	ReviewerID uint    `json:"reviewer_id" gorm:"index"`
	Rating     int     `json:"rating"`
	Content    string  `json:"content" gorm:"type:text"`
	Reviewer   Profile `json:"-" gorm:"foreignKey:ReviewerID"`
}

type ReviewDto struct {
	ID        uint       `json:"_id"`
	Rating    int        `json:"rating"`
	Content   string     `json:"content"`
	Reviewer  ProfileDto `json:"reviewer"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ReviewRequest struct {
	gorm.Model
	PaperID         uint       `json:"paper_id" gorm:"index"`
	RequestedByID   uint       `json:"requested_by_id" gorm:"index"`
	RequestedFromID uint       `json:"requested_from_id" gorm:"index"`
	Message         string     `json:"message" gorm:"type:text"`
	Deadline        *time.Time `json:"deadline"`
	Status          string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Paper           Paper      `json:"-" gorm:"foreignKey:PaperID"`
	RequestedBy     Profile    `json:"-" gorm:"foreignKey:RequestedByID"`
}
