package services

import (
	"fmt"
	"time"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"

	"gorm.io/gorm"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{db: db, rt: rt, ps: ps}
}

// EmitAlert persists the alert and fans it out over websocket and push.
// Safe to call anywhere; a no-op before InitAlertDeps.
func EmitAlert(userID uint, typ, message string) {
	if _alert.db == nil {
		return
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastEvent(userID, "alert.created", a)
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "Nutrition alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

// ListAlerts returns the user's alert history, newest first.
func ListAlerts(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var alerts []models.Alert
	err := _alert.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// MarkAlertRead is user-scoped; a foreign alert ID updates nothing.
func MarkAlertRead(userID, alertID uint) error {
	res := _alert.db.
		Model(&models.Alert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
