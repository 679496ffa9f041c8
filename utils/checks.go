package utils

import (
	models "Veinticuatro/models/postgres"

	"gorm.io/gorm"
)

// UserByEmail resolves a user row from an authenticated email.
func UserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileExists checks whether a game profile row exists for the username.
func ProfileExists(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&models.GameProfile{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
