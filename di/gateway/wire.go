//go:build wireinject
// +build wireinject

package gateway

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
		gatewayDomain,
		routing,
		provideServer,
	)

	return &http.HTTP{}, nil
}
