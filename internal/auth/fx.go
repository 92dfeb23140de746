package auth

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/heritage/internal/auth/repository"
	"github.com/smallbiznis/heritage/internal/auth/service"
	"github.com/smallbiznis/heritage/internal/auth/session"
	"github.com/smallbiznis/heritage/internal/auth/token"
	"go.uber.org/fx"
)

const snowflakeNode = 1

var Module = fx.Module("auth.service",
	fx.Provide(newIDNode),
	fx.Provide(repository.New),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
	fx.Provide(token.NewIssuer),
)

func newIDNode() (*snowflake.Node, error) {
	return snowflake.NewNode(snowflakeNode)
}
