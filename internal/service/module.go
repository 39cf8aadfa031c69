package service

import (
	"go.uber.org/fx"
)

var (
	Module = fx.Provide(
		NewBookmarks,
		NewUsers,
		NewAuth,
	)
)
