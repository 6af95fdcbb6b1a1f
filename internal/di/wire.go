//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"socialwall/internal/user"
	"socialwall/internal/wall"
)

// InitializeWallApplication is a declaration only, wire generates the body.
func InitializeWallApplication() (*Application, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideDatabaseConnection,
		wall.NewRepository,
		ProvideWallService,
		wire.Bind(new(wall.Usecase), new(*wall.Service)),
		wall.NewHandler,
		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil
}
