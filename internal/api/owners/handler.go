package owners

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"realestate-app/database"
	"realestate-app/internal/domain/owners"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OwnerDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	Photo    string  `json:"photo,omitempty"` // base64
	Birthday *string `json:"birthday,omitempty"`
}

// getOwnerByID returns the canonical owner view. Owners are created
// outside this service; this is the only read it exposes for them.
func getOwnerByID(ctx context.Context, db *gorm.DB, id uint) (*OwnerDTO, error) {
	var owner owners.Owner
	if err := db.WithContext(ctx).First(&owner, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, owners.ErrNotFound
		}
		return nil, err
	}

	dto := OwnerDTO{
		ID:      owner.ID,
		Name:    owner.Name,
		Address: owner.Address,
	}
	if len(owner.Photo) > 0 {
		dto.Photo = base64.StdEncoding.EncodeToString(owner.Photo)
	}
	if owner.Birthday != nil {
		birthday := owner.Birthday.Format(time.DateOnly)
		dto.Birthday = &birthday
	}
	return &dto, nil
}

// ------------------------------
// GET /owners/:id
// ------------------------------
func GetOwner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner id"})
		return
	}

	dto, err := getOwnerByID(c.Request.Context(), database.DB, uint(id))
	if err != nil {
		if err == owners.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
			return
		}
		slog.Error("owner lookup failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto)
}
