//go:build wireinject
// +build wireinject

package room

import (
	"hotel/di"
	"hotel/transport/http"

	"github.com/google/wire"
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		di.Configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		roomDomain,
		routing,
		provideServer,
	)

	return &http.HTTP{}, nil
}
