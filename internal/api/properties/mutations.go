package properties

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"realestate-app/internal/domain/owners"
	"realestate-app/internal/domain/properties"

	"gorm.io/gorm"
)

// createProperty inserts a property with its inline images in one
// transaction. The owner must already exist; the property being created
// obviously cannot. Creation writes no trace row — only the three other
// mutations feed the audit log.
func createProperty(ctx context.Context, db *gorm.DB, req CreatePropertyRequest) (*PropertyDTO, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", properties.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.CodeInternal) == "" {
		return nil, fmt.Errorf("%w: code_internal is required", properties.ErrInvalidArgument)
	}

	var created properties.Property
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwner(tx, req.OwnerID); err != nil {
			return err
		}

		p := properties.Property{
			Name:         req.Name,
			Address:      req.Address,
			Price:        req.Price,
			CodeInternal: req.CodeInternal,
			Year:         req.Year,
			OwnerID:      req.OwnerID,
		}

		for _, img := range req.Images {
			file, err := decodeImageData(img.File)
			if err != nil {
				return fmt.Errorf("%w: image file is not valid base64", properties.ErrInvalidArgument)
			}
			p.Images = append(p.Images, properties.PropertyImage{
				File:    file,
				Enabled: enabledOrDefault(img.Enabled),
			})
		}

		if err := tx.Create(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return properties.ErrDuplicateCode
			}
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loadPropertyDTO(ctx, db, created.ID)
}

// addImage inserts the image and its "Image added" trace atomically.
func addImage(ctx context.Context, db *gorm.DB, propertyID uint, file []byte, enabled bool) (*PropertyDTO, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProperty(tx, propertyID); err != nil {
			return err
		}

		img := properties.PropertyImage{
			PropertyID: propertyID,
			File:       file,
			Enabled:    enabled,
		}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}

		trace := properties.PropertyTrace{
			PropertyID: propertyID,
			DateSale:   today(),
			Name:       properties.TraceImageAdded,
			Value:      0,
			Tax:        0,
		}
		return tx.Create(&trace).Error
	})
	if err != nil {
		return nil, err
	}

	return loadPropertyDTO(ctx, db, propertyID)
}

// changePrice sets the new price and appends its trace atomically. The
// caller-supplied dateSale is deliberately not used for the stamp: every
// price trace carries the current date, matching the recorded history
// format.
func changePrice(ctx context.Context, db *gorm.DB, req ChangePriceRequest) (*PropertyDTO, error) {
	if req.NewPrice < 0 {
		return nil, fmt.Errorf("%w: new_price must not be negative", properties.ErrInvalidArgument)
	}
	if req.Tax < 0 {
		return nil, fmt.Errorf("%w: tax must not be negative", properties.ErrInvalidArgument)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prop properties.Property
		if err := tx.First(&prop, req.PropertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return properties.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&prop).Update("price", req.NewPrice).Error; err != nil {
			return err
		}

		label := properties.TracePriceChange
		if strings.TrimSpace(req.Note) != "" {
			label = req.Note
		}
		trace := properties.PropertyTrace{
			PropertyID: prop.ID,
			DateSale:   today(),
			Name:       label,
			Value:      req.NewPrice,
			Tax:        req.Tax,
		}
		return tx.Create(&trace).Error
	})
	if err != nil {
		return nil, err
	}

	return loadPropertyDTO(ctx, db, req.PropertyID)
}

// updateProperty applies the set fields of a partial update. When nothing
// is set the transaction commits as a no-op and no trace is written. When
// anything changed, one "Property updated" trace records req.Price as its
// value, whether or not the price itself was part of the update.
func updateProperty(ctx context.Context, db *gorm.DB, req UpdatePropertyRequest) (*PropertyDTO, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prop properties.Property
		if err := tx.First(&prop, req.PropertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return properties.ErrNotFound
			}
			return err
		}

		changed := false
		if strings.TrimSpace(req.Name) != "" {
			prop.Name = req.Name
			changed = true
		}
		if strings.TrimSpace(req.Address) != "" {
			addr := req.Address
			prop.Address = &addr
			changed = true
		}
		if strings.TrimSpace(req.CodeInternal) != "" {
			prop.CodeInternal = req.CodeInternal
			changed = true
		}
		if req.Year != nil {
			year := *req.Year
			prop.Year = &year
			changed = true
		}
		if req.OwnerID > 0 {
			if err := requireOwner(tx, req.OwnerID); err != nil {
				return err
			}
			prop.OwnerID = req.OwnerID
			changed = true
		}
		if req.Price > 0 {
			prop.Price = req.Price
			changed = true
		}

		if !changed {
			return nil
		}

		if err := tx.Save(&prop).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return properties.ErrDuplicateCode
			}
			return err
		}

		trace := properties.PropertyTrace{
			PropertyID: prop.ID,
			DateSale:   today(),
			Name:       properties.TracePropertyUpdated,
			Value:      req.Price,
			Tax:        0,
		}
		return tx.Create(&trace).Error
	})
	if err != nil {
		return nil, err
	}

	return loadPropertyDTO(ctx, db, req.PropertyID)
}

func requireOwner(tx *gorm.DB, ownerID uint) error {
	var count int64
	if err := tx.Model(&owners.Owner{}).Where("id = ?", ownerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func requireProperty(tx *gorm.DB, propertyID uint) error {
	var count int64
	if err := tx.Model(&properties.Property{}).Where("id = ?", propertyID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return properties.ErrNotFound
	}
	return nil
}

// decodeImageData strips an optional "data:<mime>;base64," prefix and
// decodes the remainder. Without the marker the whole string is treated
// as base64.
func decodeImageData(data string) ([]byte, error) {
	if data == "" {
		return nil, errors.New("empty image data")
	}
	payload := data
	if strings.HasPrefix(strings.ToLower(data), "data:") {
		if i := strings.Index(data, "base64,"); i >= 0 {
			payload = data[i+len("base64,"):]
		}
	}
	return base64.StdEncoding.DecodeString(payload)
}

func enabledOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// today returns the current calendar date; trace rows carry no
// time-of-day component.
func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
