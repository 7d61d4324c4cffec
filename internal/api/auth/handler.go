package auth

import (
	"net/http"
	"time"

	"realestate-app/config"
	"realestate-app/database"
	"realestate-app/internal/domain/owners"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Login authenticates an owner by id and issues a short-lived HS256
// token carrying the owner claims the middleware reads back.
func Login(c *gin.Context) {
	var input struct {
		OwnerID uint `json:"owner_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner owners.Owner
	if err := database.DB.First(&owner, input.OwnerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown owner"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load owner"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"owner_id":  owner.ID,
		"name":      owner.Name,
		"auth_time": now.UTC().Format(time.RFC3339),
		"nbf":       now.Unix(),
		"exp":       now.Add(time.Duration(config.JWT_EXPIRE_MINUTES) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.JWT_SECRET))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "successful": true})
}
