// Package cloudmetrics pushes the catalog gauges to a Prometheus Pushgateway
// or remote-write endpoint for deployments that are not scraped.
package cloudmetrics

import "go.uber.org/fx"

var Module = fx.Module("cloudmetrics",
	fx.Provide(NewPusher),
)
