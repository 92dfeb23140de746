package heritagesite

import (
	"github.com/smallbiznis/heritage/internal/heritagesite/repository"
	"github.com/smallbiznis/heritage/internal/heritagesite/service"
	"go.uber.org/fx"
)

var Module = fx.Module("heritagesite.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
