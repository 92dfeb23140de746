package pdf

import (
	"context"
	"io"

	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

// Provider renders printable documents for catalog records.
type Provider interface {
	GenerateFactSheet(ctx context.Context, site sitedomain.Site) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateFactSheet(ctx context.Context, site sitedomain.Site) (io.Reader, error) {
	return nil, nil
}
