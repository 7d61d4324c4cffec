package properties

import (
	"errors"
	"log/slog"
	"net/http"

	"realestate-app/internal/domain/owners"
	"realestate-app/internal/domain/properties"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps the typed failures of the mutation/query paths onto
// HTTP statuses. Anything unclassified is an infrastructure failure:
// logged here, generic 500 to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, owners.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
	case errors.Is(err, properties.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
	case errors.Is(err, properties.ErrDuplicateCode):
		c.JSON(http.StatusConflict, gin.H{"error": "code_internal already in use"})
	case errors.Is(err, properties.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation blocked by related records"})
	default:
		slog.Error("property request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
