package controllers

import (
	"Veinticuatro/middleware"
	models "Veinticuatro/models/postgres"
	"Veinticuatro/utils"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Creates a new account
// @Description Registers a user with email, username and password
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		// Minimum input sanitizing
		if strings.TrimSpace(body.Email) == "" || strings.TrimSpace(body.Username) == "" ||
			strings.TrimSpace(body.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		if taken, err := utils.ProfileExists(db, body.Username); err == nil && taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&models.GameProfile{Username: body.Username}).Error; err != nil {
				return err
			}
			return tx.Create(&models.User{
				Email:           body.Email,
				ProfileUsername: body.Username,
				PasswordHash:    string(hash),
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already taken"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Account created"})
	}
}

// @Summary Logs a user in
// @Description Validates credentials, sets the session cookie and returns the JWT used on the socket handshake
// @Tags user
// @Produce json
// @Success 200 {object} object{token=string,username=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := c.PostForm("email")
		password := c.PostForm("password")

		// Minimum input sanitizing
		if strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		session.Set("Email", user.Email)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session!"})
			return
		}

		token, err := middleware.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":    token,
			"username": user.ProfileUsername,
		})
	}
}

// Logout from server, deletes the session associated with the Email key
// @Summary Logs a user out
// @Tags user
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [delete]
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("Email")
	// There is no session for the user, won't delete nothing
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete("Email")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Public profile info
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{username=string,icon=integer,stats=object}
// @Failure 404 {object} object{error=string}
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var profile models.GameProfile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var stats models.ProfileStats
		if len(profile.UserStats) > 0 {
			_ = json.Unmarshal(profile.UserStats, &stats)
		}

		c.JSON(http.StatusOK, gin.H{
			"username": profile.Username,
			"icon":     profile.UserIcon,
			"stats":    stats,
		})
	}
}

// @Summary Private profile info for the logged-in user
// @Tags user
// @Produce json
// @Success 200 {object} object{email=string,username=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email, _ := session.Get("Email").(string)
		if email == "" {
			email = c.GetString("Email")
		}

		var user models.User
		if err := db.Preload("GameProfile").Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"email":    user.Email,
			"username": user.ProfileUsername,
			"icon":     user.GameProfile.UserIcon,
		})
	}
}
