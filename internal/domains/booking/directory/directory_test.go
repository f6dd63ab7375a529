package directory_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/directory"
	"hotel/internal/domains/booking/model"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/identity"
)

const roomID = "7d6b1e5a-0c1f-4a3e-9a53-2f1f5a9d8c01"

func newDirectory(t *testing.T, url string, ttl int) (directory.Directory, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Booking.RoomDirectoryURL = url + "/"
	cfg.Booking.RoomDirectoryTimeoutMs = 200
	cfg.Booking.RoomCacheTTL = ttl

	return directory.New(cfg, http.DefaultClient, mockCache, mocks.NewOtel()), mockCache
}

func TestLookup_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/"+roomID, r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + roomID + `","name":"Deluxe","room_type":"suite","main_image":"/uploads/a.png","price_per_day":120}`))
	}))
	defer server.Close()

	dir, mockCache := newDirectory(t, server.URL, 60)

	saved := make(chan model.Room, 1)

	mockCache.EXPECT().Get(gomock.Any(), "booking:room:"+roomID, gomock.Any()).Return(cache.Nil)
	mockCache.EXPECT().Save(gomock.Any(), "booking:room:"+roomID, gomock.Any(), 60).DoAndReturn(
		func(_ context.Context, _ string, value any, _ int) error {
			saved <- value.(model.Room)

			return nil
		})

	ctx := identity.WithIdentity(context.Background(), identity.Identity{UserID: "u1", Role: "customer"}, "Bearer token")

	result := dir.Lookup(ctx, roomID)

	assert.Equal(t, directory.Found, result.Outcome)
	assert.Equal(t, "Deluxe", result.Room.Name)
	assert.Equal(t, "suite", result.Room.RoomType)

	select {
	case room := <-saved:
		assert.Equal(t, "Deluxe", room.Name)
	case <-time.After(time.Second):
		t.Fatal("room was not cached")
	}
}

func TestLookup_Cached(t *testing.T) {
	dir, mockCache := newDirectory(t, "http://127.0.0.1:1", 60)

	mockCache.EXPECT().Get(gomock.Any(), "booking:room:"+roomID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, value any) error {
			*value.(*model.Room) = model.Room{ID: roomID, Name: "Cached"}

			return nil
		})

	result := dir.Lookup(context.Background(), roomID)

	assert.Equal(t, directory.Found, result.Outcome)
	assert.Equal(t, "Cached", result.Room.Name)
}

func TestLookup_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    directory.Outcome
	}{
		{
			name: "missing room",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"Room not found"}`, http.StatusNotFound)
			},
			want: directory.NotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: directory.Unavailable,
		},
		{
			name: "rejected token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: directory.Unavailable,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			want: directory.Unavailable,
		},
		{
			name: "slow directory",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			want: directory.Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			dir, mockCache := newDirectory(t, server.URL, 0)
			mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

			started := time.Now()
			result := dir.Lookup(context.Background(), roomID)

			assert.Equal(t, tt.want, result.Outcome)
			assert.Less(t, time.Since(started), time.Second)
		})
	}
}

func TestLookup_CacheFailureFallsBackToDirectory(t *testing.T) {
	dir, mockCache := newDirectory(t, "http://127.0.0.1:1", 0)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	result := dir.Lookup(context.Background(), roomID)

	require.Equal(t, directory.Unavailable, result.Outcome)
	assert.Equal(t, "unavailable", result.Outcome.String())
}
