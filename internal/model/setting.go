package model

import "time"

const (
	SettingCurrentSession  = "current_session"
	SettingCurrentSemester = "current_semester"
)

type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}
