package services

import (
	"errors"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/config"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
	}
	return config.DB.Create(&user).Error
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}
	return &user, nil
}

