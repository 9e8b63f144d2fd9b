package models

import "gorm.io/gorm"

// UserDevice is one push target for grade alerts. Devices are keyed by the
// hash of their platform token, so re-registering after an app reinstall
// updates the existing row instead of stacking duplicate endpoints. Enabled
// is the per-user notification switch; PushToUser skips disabled rows.
type UserDevice struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Platform    string `gorm:"size:16"` // "android" | "ios"
	TokenHash   string `gorm:"size:64;index"`
	EndpointARN string `gorm:"size:256"`
	Enabled     bool   `gorm:"default:true"`
}
