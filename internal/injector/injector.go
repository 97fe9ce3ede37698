//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/replicon-net/replicon/internal/observability/log"
)

// ProvideLogger is wire's injector stub for the demo binary's logger.
// wire_gen.go holds the generated wiring this file describes; re-run `go
// generate` with this build tag enabled after changing the provider set.
func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelDebug)
}
