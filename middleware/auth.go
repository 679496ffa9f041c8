package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired is a simple middleware to check the session. A Bearer token
// works too, the mobile client has no cookie jar.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("Email") != nil {
		c.Next()
		return
	}

	if c.GetHeader("Authorization") != "" {
		email, err := JWT_decoder(c)
		if err != nil {
			c.Abort()
			return
		}
		c.Set("Email", email)
		c.Next()
		return
	}

	// Abort the request with the appropriate error code
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateJWT issues the token the client presents on the socket handshake.
func GenerateJWT(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
	return token.SignedString(jwtSecret())
}

func parseJWT(tokenString string) (string, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("token has no email claim")
	}
	return email, nil
}

// JWT_decoder extracts the authenticated email from a REST request's
// Authorization header.
func JWT_decoder(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
		return "", errors.New("missing authorization header")
	}
	email, err := parseJWT(header)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid JWT"})
		return "", err
	}
	return email, nil
}

// Socketio_JWT_decoder extracts the authenticated email from a socket.io
// handshake's auth data.
func Socketio_JWT_decoder(authData map[string]interface{}) (string, error) {
	token, ok := authData["authorization"].(string)
	if !ok || token == "" {
		return "", errors.New("missing authorization token")
	}
	return parseJWT(token)
}
