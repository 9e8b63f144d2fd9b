package models

import "time"

// Alert is one nutrition warning raised while logging a meal, kept so the
// client can show a history beyond the live websocket push. Read flips when
// the user opens it.
type Alert struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Type      string `gorm:"size:20"` // "grade" | "info"
	Message   string `gorm:"type:text"`
	Read      bool   `gorm:"default:false;index"`
	CreatedAt time.Time
}
