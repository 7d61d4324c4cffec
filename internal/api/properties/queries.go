package properties

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"realestate-app/internal/domain/properties"
	"realestate-app/internal/infra/cache"
	"realestate-app/internal/infra/metrics"
	"realestate-app/internal/pagination"

	"gorm.io/gorm"
)

// The property list use case allows larger pages than the generic
// paginator does.
const maxListPageSize = 200

// propertyFilterQuery composes the conjunction of all set filter fields
// over the property table. Absent fields are no-ops; an empty filter
// matches every property.
func propertyFilterQuery(db *gorm.DB, f ListFiltersRequest) *gorm.DB {
	q := db.Model(&properties.Property{})

	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.CodeInternal != "" {
		q = q.Where("code_internal = ?", f.CodeInternal)
	}
	if f.NameContains != "" {
		q = q.Where("name LIKE ?", "%"+f.NameContains+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinYear != nil {
		q = q.Where("year >= ?", *f.MinYear)
	}
	if f.MaxYear != nil {
		q = q.Where("year <= ?", *f.MaxYear)
	}

	if f.HasImages != nil {
		if *f.HasImages {
			q = q.Where("EXISTS (SELECT 1 FROM property_images i WHERE i.property_id = properties.id)")
			if f.ImageEnabled != nil {
				q = q.Where("EXISTS (SELECT 1 FROM property_images i WHERE i.property_id = properties.id AND i.enabled = ?)", *f.ImageEnabled)
			}
		} else {
			// ImageEnabled is ignored for image-less properties.
			q = q.Where("NOT EXISTS (SELECT 1 FROM property_images i WHERE i.property_id = properties.id)")
		}
	}

	return q
}

func listPage(f ListFiltersRequest) (page, pageSize int) {
	page = f.Page
	if page < 1 {
		page = 1
	}
	pageSize = f.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxListPageSize {
		pageSize = maxListPageSize
	}
	return page, pageSize
}

// listProperties answers "properties matching filter f, page N" with a
// deterministic order. Total is counted before pagination; ImageEnabled
// narrows the returned image subset of every matched property.
func listProperties(ctx context.Context, db *gorm.DB, f ListFiltersRequest) (pagination.PagedResult[PropertyDTO], error) {
	var result pagination.PagedResult[PropertyDTO]
	db = db.WithContext(ctx)

	var total int64
	if err := propertyFilterQuery(db, f).Count(&total).Error; err != nil {
		return result, err
	}

	page, pageSize := listPage(f)

	q := propertyFilterQuery(db, f).Preload("Owner")
	if f.ImageEnabled != nil {
		q = q.Preload("Images", "enabled = ?", *f.ImageEnabled)
	} else {
		q = q.Preload("Images")
	}

	var rows []properties.Property
	err := q.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return result, err
	}

	items := make([]PropertyDTO, 0, len(rows))
	for _, p := range rows {
		items = append(items, toPropertyDTO(p, true))
	}

	result.Items = items
	result.Total = total
	result.Page = page
	result.PageSize = pageSize
	return result, nil
}

// listPropertiesCached memoizes listProperties under a page-qualified
// key. A hit is returned verbatim; cached pages may be stale for up to
// the TTL after a mutation, which is accepted. The cache never fails the
// call.
func listPropertiesCached(ctx context.Context, db *gorm.DB, store *cache.Store, agg *metrics.Aggregator, f ListFiltersRequest, ttl time.Duration) (pagination.PagedResult[PropertyDTO], error) {
	if store == nil {
		return listProperties(ctx, db, f)
	}

	page, pageSize := listPage(f)
	key := fmt.Sprintf("%s_page_%d_size_%d", filterCacheKey(f), page, pageSize)

	if cached, ok := cache.GetAs[pagination.PagedResult[PropertyDTO]](store, key); ok {
		if agg != nil {
			agg.RecordCacheHit(key)
		}
		return cached, nil
	}
	if agg != nil {
		agg.RecordCacheMiss(key)
	}

	result, err := listProperties(ctx, db, f)
	if err != nil {
		return result, err
	}

	store.Set(key, result, ttl)
	return result, nil
}

// filterCacheKey derives the cache key prefix from the filter fields.
// Free-form string fields are quoted so an embedded separator character
// cannot shift a value across field boundaries; two distinct filters
// never share a key.
func filterCacheKey(f ListFiltersRequest) string {
	return fmt.Sprintf("properties_%s_%q_%q_%s_%s_%s_%s_%s_%s",
		fmtUint(f.OwnerID),
		f.CodeInternal,
		f.NameContains,
		fmtFloat(f.MinPrice), fmtFloat(f.MaxPrice),
		fmtInt(f.MinYear), fmtInt(f.MaxYear),
		fmtBool(f.HasImages), fmtBool(f.ImageEnabled),
	)
}

func fmtUint(v *uint) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func fmtInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func fmtFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func fmtBool(v *bool) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%t", *v)
}

// loadPropertyDTO re-reads the canonical view of a property, owner and
// images included. Mutations call it after commit so the returned state
// always matches what was persisted.
func loadPropertyDTO(ctx context.Context, db *gorm.DB, id uint) (*PropertyDTO, error) {
	var p properties.Property
	err := db.WithContext(ctx).
		Preload("Owner").
		Preload("Images").
		First(&p, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, properties.ErrNotFound
		}
		return nil, err
	}
	dto := toPropertyDTO(p, true)
	return &dto, nil
}

func toPropertyDTO(p properties.Property, withOwner bool) PropertyDTO {
	dto := PropertyDTO{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		OwnerID:      p.OwnerID,
	}
	if withOwner && p.Owner.ID != 0 {
		dto.Owner = &OwnerSummaryDTO{ID: p.Owner.ID, Name: p.Owner.Name}
	}
	for _, img := range p.Images {
		dto.Images = append(dto.Images, PropertyImageDTO{
			ID:      img.ID,
			File:    base64.StdEncoding.EncodeToString(img.File),
			Enabled: img.Enabled,
		})
	}
	return dto
}
