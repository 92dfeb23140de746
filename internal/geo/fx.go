package geo

import (
	"github.com/smallbiznis/heritage/internal/geo/repository"
	"github.com/smallbiznis/heritage/internal/geo/service"
	"go.uber.org/fx"
)

var Module = fx.Module("geo.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
