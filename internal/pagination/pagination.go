package pagination

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"realestate-app/internal/infra/cache"

	"gorm.io/gorm"
)

// MaxPageSize caps generic pagination. The property list endpoint has its
// own, higher ceiling at its call site.
const MaxPageSize = 100

type PagedResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// Paginate bounds the requested page/pageSize and returns the offset to
// skip. Idempotent; never yields a negative skip or a zero page size.
func Paginate(page, pageSize int) (skip, effPage, effPageSize int) {
	effPage = page
	if effPage < 1 {
		effPage = 1
	}
	effPageSize = pageSize
	if effPageSize < 1 {
		effPageSize = 1
	}
	if effPageSize > MaxPageSize {
		effPageSize = MaxPageSize
	}
	skip = (effPage - 1) * effPageSize
	return skip, effPage, effPageSize
}

// PagedQuery counts the rows matching q, then fetches the bounded page.
// The caller is expected to have applied a stable ordering already.
func PagedQuery[T any](ctx context.Context, q *gorm.DB, page, pageSize int) (PagedResult[T], error) {
	var result PagedResult[T]

	var total int64
	if err := q.WithContext(ctx).Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return result, err
	}

	skip, effPage, effPageSize := Paginate(page, pageSize)

	items := make([]T, 0, effPageSize)
	err := q.WithContext(ctx).Session(&gorm.Session{}).
		Offset(skip).
		Limit(effPageSize).
		Find(&items).Error
	if err != nil {
		return result, err
	}

	result.Items = items
	result.Total = total
	result.Page = effPage
	result.PageSize = effPageSize
	return result, nil
}

// PagedQueryWithCache memoizes PagedQuery results under a page-qualified
// key. The cache is best effort: a nil store or a stale miss simply falls
// back to the direct query.
func PagedQueryWithCache[T any](ctx context.Context, q *gorm.DB, page, pageSize int, store *cache.Store, baseKey string, ttl time.Duration) (PagedResult[T], error) {
	if store == nil {
		return PagedQuery[T](ctx, q, page, pageSize)
	}

	_, effPage, effPageSize := Paginate(page, pageSize)
	key := fmt.Sprintf("%s_page_%d_size_%d", baseKey, effPage, effPageSize)

	if cached, ok := cache.GetAs[PagedResult[T]](store, key); ok {
		slog.Debug("pagination cache hit", "key", key)
		return cached, nil
	}

	result, err := PagedQuery[T](ctx, q, page, pageSize)
	if err != nil {
		return result, err
	}

	store.Set(key, result, ttl)
	slog.Debug("pagination cache miss, stored", "key", key)
	return result, nil
}
