package properties

import (
	"testing"

	"realestate-app/internal/domain/owners"
	"realestate-app/internal/domain/properties"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection only, or each pooled connection would see its own
	// empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&owners.Owner{},
		&properties.Property{},
		&properties.PropertyImage{},
		&properties.PropertyTrace{},
	))

	return db
}

func seedOwner(t *testing.T, db *gorm.DB, name string) owners.Owner {
	t.Helper()

	owner := owners.Owner{Name: name}
	require.NoError(t, db.Create(&owner).Error)
	return owner
}

type propSeed struct {
	name  string
	code  string
	price float64
	year  *int
	// enabled flags, one image per entry
	images []bool
}

func seedProperty(t *testing.T, db *gorm.DB, ownerID uint, seed propSeed) properties.Property {
	t.Helper()

	p := properties.Property{
		Name:         seed.name,
		CodeInternal: seed.code,
		Price:        seed.price,
		Year:         seed.year,
		OwnerID:      ownerID,
	}
	for _, enabled := range seed.images {
		p.Images = append(p.Images, properties.PropertyImage{
			File:    []byte{0x1, 0x2, 0x3},
			Enabled: enabled,
		})
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func countTraces(t *testing.T, db *gorm.DB, propertyID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&properties.PropertyTrace{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error)
	return count
}
