package shared

import (
	"context"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// FilterByID matches the row of table whose fieldID equals id.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the non-empty parts with ':'.
func BuildCacheKey(parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, cacheKeySeparator)
}

// InvalidateCaches deletes the given keys. Entries ending in '*' are cleared
// as patterns. Failures are logged and do not interrupt the remaining keys.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, keys ...string) {
	for _, key := range keys {
		var err error

		if strings.HasSuffix(key, constant.Asterix) {
			err = redisCache.Clear(ctx, key)
		} else {
			err = redisCache.Delete(ctx, key)
		}

		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache")
		}
	}
}
