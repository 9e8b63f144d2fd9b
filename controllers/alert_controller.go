package controllers

import (
	"net/http"
	"strconv"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /alerts?limit=20
func ListAlerts(c *gin.Context) {
	uid := c.GetUint("userID")

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	alerts, err := services.ListAlerts(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// POST /alerts/:id/read
func MarkAlertRead(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	if err := services.MarkAlertRead(uid, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert read"})
}
