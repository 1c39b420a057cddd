package statistics

import (
	"errors"

	"github.com/markusressel/gpufan2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "gpufan2go"
)

// Register exposes the state of the given engines on registerer.
// A collector registered by an earlier call is replaced.
func Register(registerer prometheus.Registerer, engines ...*controller.Engine) error {
	collector := NewEngineCollector(engines)
	err := registerer.Register(collector)

	var registered prometheus.AlreadyRegisteredError
	if errors.As(err, &registered) {
		registerer.Unregister(registered.ExistingCollector)
		err = registerer.Register(collector)
	}
	return err
}
