//go:build wireinject
// +build wireinject

package auth

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
		authDomain,
		routing,
		provideServer,
	)

	return &http.HTTP{}, nil
}
