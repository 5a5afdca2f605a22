//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/brandnewmax/searchintentanalyze/internal/domain"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		domain.DomainProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
