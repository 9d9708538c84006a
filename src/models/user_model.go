package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Profile struct {
	gorm.Model
	FullName          string   `json:"full_name"`
	Email             string   `json:"email" gorm:"uniqueIndex"`
	Password          string   `json:"-"`
	Institution       string   `json:"institution"`
	Department        string   `json:"department"`
	AcademicTitle     string   `json:"academic_title"`
	ResearchInterests []string `json:"research_interests" gorm:"serializer:json"`
	Skills            []string `json:"skills" gorm:"serializer:json"`
	Bio               string   `json:"bio" gorm:"type:text"`
	AvatarURL         string   `json:"avatar_url"`
}

// MarshalJSON renames ID to _id to match the shape the frontend expects.
func (p Profile) MarshalJSON() ([]byte, error) {
	type Alias Profile
	return json.Marshal(&struct {
		ID uint `json:"_id"`
		*Alias
	}{
		ID:    p.ID,
		Alias: (*Alias)(&p),
	})
}

type ProfileDto struct {
	ID            uint   `json:"_id"`
	FullName      string `json:"full_name"`
	Institution   string `json:"institution"`
	AcademicTitle string `json:"academic_title,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// Dto strips a profile down to the fields shown on cards and lists.
func (p *Profile) Dto() ProfileDto {
	return ProfileDto{
		ID:            p.ID,
		FullName:      p.FullName,
		Institution:   p.Institution,
		AcademicTitle: p.AcademicTitle,
		AvatarURL:     p.AvatarURL,
	}
}
