package controllers

import (
	"net/http"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/services"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/utils"

	"github.com/gin-gonic/gin"
)

type DevController struct {
	Catalog *services.CatalogStore
	Push    *services.PushService
}

func NewDevController(cs *services.CatalogStore, ps *services.PushService) *DevController {
	return &DevController{Catalog: cs, Push: ps}
}

// POST /dev/catalog/import  { "entries": [ {...}, ... ] }
// Upserts catalog rows by code. Dev-only seeding endpoint.
func (d *DevController) ImportCatalog(c *gin.Context) {
	var req struct {
		Entries []models.FoodCatalogEntry `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := d.Catalog.ImportBatch(c.Request.Context(), req.Entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}

type pushReq struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

func (d *DevController) PushTest(c *gin.Context) {
	uid := c.GetUint("userID")

	var req pushReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// sane defaults for quick tests
	if req.Title == "" {
		req.Title = "Test alert"
	}
	if req.Body == "" {
		req.Body = "This is only a test."
	}
	if req.Data == nil {
		req.Data = map[string]string{"type": "info"}
	}

	d.Push.PushToUser(uid, req.Title, req.Body, req.Data)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type DevUploadRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

func DevUploadImage(c *gin.Context) {
	var req DevUploadRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	url, err := utils.UploadBase64ImageToS3(req.ImageBase64, "general/dev-upload")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
