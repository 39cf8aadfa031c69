package main

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/logger"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/rpc"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/service"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/transport"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		db.Module,
		auth.Module,
		service.Module,
		transport.Module,
		rpc.Module,
		fx.Invoke(func(*transport.HTTPServer, *rpc.BookmarkerServerImpl) {}),
	).Run()
}
