package properties

import (
	"net/http"
	"strconv"
	"time"

	"realestate-app/database"
	"realestate-app/internal/domain/properties"
	"realestate-app/internal/infra/cache"
	"realestate-app/internal/infra/metrics"
	"realestate-app/internal/pagination"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// POST /api/realEstate/CreateProperty
// ------------------------------
func CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	dto, err := createProperty(c.Request.Context(), database.DB, req)
	metrics.Default.RecordDatabaseQuery("create_property", time.Since(start).Milliseconds())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// POST /api/realEstate/AddImageProperty
// ------------------------------
func AddImageProperty(c *gin.Context) {
	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := decodeImageData(req.File)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be valid base64"})
		return
	}

	start := time.Now()
	dto, err := addImage(c.Request.Context(), database.DB, req.PropertyID, file, enabledOrDefault(req.Enabled))
	metrics.Default.RecordDatabaseQuery("add_image", time.Since(start).Milliseconds())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// POST /api/realEstate/ChangePrice
// ------------------------------
func ChangePrice(c *gin.Context) {
	var req ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	dto, err := changePrice(c.Request.Context(), database.DB, req)
	metrics.Default.RecordDatabaseQuery("change_price", time.Since(start).Milliseconds())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// POST /api/realEstate/UpdateProperty
// ------------------------------
func UpdateProperty(c *gin.Context) {
	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	dto, err := updateProperty(c.Request.Context(), database.DB, req)
	metrics.Default.RecordDatabaseQuery("update_property", time.Since(start).Milliseconds())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// POST /api/realEstate/ListPropertyWithFilters
// ------------------------------
func ListPropertyWithFilters(c *gin.Context) {
	var req ListFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := listPropertiesCached(c.Request.Context(), database.DB, cache.Default, metrics.Default, req, 0)
	metrics.Default.RecordDatabaseQuery("list_properties", time.Since(start).Milliseconds())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ------------------------------
// GET /properties/:id/traces?page=&page_size=
// ------------------------------
func GetPropertyTraces(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	ctx := c.Request.Context()
	if err := requireProperty(database.DB.WithContext(ctx), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	q := database.DB.Model(&properties.PropertyTrace{}).
		Where("property_id = ?", uint(id)).
		Order("date_sale DESC, id DESC")

	result, err := pagination.PagedQueryWithCache[properties.PropertyTrace](
		ctx, q, page, pageSize,
		cache.Default, "property_traces_"+strconv.FormatUint(id, 10), 0,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
