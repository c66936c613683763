//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"link-catalog/internal/biz"
	"link-catalog/internal/conf"
	"link-catalog/internal/data"
	"link-catalog/internal/infra/eventbus"
	"link-catalog/internal/infra/probe"
	"link-catalog/internal/server"
	"link-catalog/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Auth, *conf.Sweep, *conf.Selection, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		data.ProviderSet,
		biz.ProviderSet,
		service.ProviderSet,
		eventbus.ProviderSet,
		probe.ProviderSet,
		newApp,
	))
}
