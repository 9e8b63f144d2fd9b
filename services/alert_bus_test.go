package services

import (
	"testing"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEmitAndListAlerts(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.Alert{}))
	InitAlertDeps(db, nil, nil)

	EmitAlert(1, "grade", "instant noodles scored 12 (poor). Consider a richer alternative.")
	EmitAlert(1, "info", "weekly summary ready")
	EmitAlert(2, "grade", "someone else's alert")

	alerts, err := ListAlerts(1, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	for _, a := range alerts {
		assert.EqualValues(t, 1, a.UserID)
		assert.False(t, a.Read)
	}
}

func TestMarkAlertReadIsUserScoped(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.Alert{}))
	InitAlertDeps(db, nil, nil)

	EmitAlert(1, "grade", "fried chicken scored 20 (poor). Consider a richer alternative.")
	alerts, err := ListAlerts(1, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	// another user cannot flip it
	err = MarkAlertRead(2, alerts[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, MarkAlertRead(1, alerts[0].ID))
	alerts, err = ListAlerts(1, 0)
	require.NoError(t, err)
	assert.True(t, alerts[0].Read)
}
