package services

import (
	"errors"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/config"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"
)

type ProfileInput struct {
	FullName       string `json:"full_name"`
	DietaryGoals   string `json:"dietary_goals"`
	ProfilePicture string `json:"profile_picture"`
	MFAEnabled     *bool  `json:"mfa_enabled"`
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"dietary_goals":   user.DietaryGoals,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
	}, nil
}

func UpdateUserProfile(email string, in ProfileInput) error {
	var user models.User
	if err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.DietaryGoals != "" {
		user.DietaryGoals = in.DietaryGoals
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}
	if in.MFAEnabled != nil {
		user.MFAEnabled = *in.MFAEnabled
	}
	return config.DB.Save(&user).Error
}
