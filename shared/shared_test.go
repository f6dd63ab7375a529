package shared_test

import (
	"context"
	"errors"
	"hotel/shared"
	"hotel/shared/cache/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:detail:r1", shared.BuildCacheKey("room", "detail", "r1"))
	assert.Equal(t, "room:r1", shared.BuildCacheKey("room", "", "r1"))
	assert.Equal(t, "", shared.BuildCacheKey())
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)
	ctx := context.Background()

	redisCache.EXPECT().Delete(ctx, "room:detail:r1").Return(errors.New("redis down"))
	redisCache.EXPECT().Clear(ctx, "room:list*").Return(nil)

	shared.InvalidateCaches(ctx, redisCache, "room:detail:r1", "room:list*")
}
