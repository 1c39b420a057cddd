package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/gpufan2go/internal/api"
	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/controller"
	"github.com/markusressel/gpufan2go/internal/persistence"
	"github.com/markusressel/gpufan2go/internal/statistics"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// RunDaemon controls the configured device until SIGTERM/SIGINT is received
// or the control loop fails.
func RunDaemon(debug bool) error {
	if os.Geteuid() != 0 {
		ui.Warning("Fan control requires root permissions to be able to modify fan speeds, please run gpufan2go as root")
	}

	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath, persistence.DaemonLockTimeout)
	if err := pers.Init(); err != nil {
		ui.Warning("Unable to initialize persistence at %s: %v", config.DbPath, err)
		pers = nil
	}

	stopper := controller.NewStopper()
	engine, err := CreateEngine(config, stopper, pers, debug)
	if err != nil {
		return err
	}
	controller.EngineMap.Set(engine.GetDeviceId(), engine)
	defer controller.EngineMap.Remove(engine.GetDeviceId())

	if err := statistics.Register(prometheus.DefaultRegisterer, engine); err != nil {
		return fmt.Errorf("cannot register statistics: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: config.Statistics.Address(), Handler: mux}

		g.Add(func() error {
			ui.Info("Starting statistics server on %s", server.Addr)
			err := server.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := server.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping statistics server: %v", err)
			} else {
				ui.Info("Statistics server stopped.")
			}
		})
	}
	if config.Api.Enabled {
		// === REST API
		rest := api.CreateRestService(prometheus.DefaultRegisterer)
		addr := config.Api.Address()

		g.Add(func() error {
			ui.Info("Starting REST api server on %s", addr)
			err := rest.Start(addr)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("cannot start REST api: %w", err)
		}, func(err error) {
			shutdownRestServer(rest)
		})
	}
	{
		// === fan control
		g.Add(func() error {
			return RunEngine(engine)
		}, func(err error) {
			stopper.Stop()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	if err == nil {
		ui.Info("Done.")
	}
	return err
}

// CreateEngine creates an engine for the configured device
func CreateEngine(config configuration.Configuration, stop controller.StopSignal, pers persistence.Persistence, debug bool) (*controller.Engine, error) {
	if config.AmdGpu == nil {
		return nil, errors.New("no device configured")
	}

	engine, err := controller.NewEngine(config.UpdateInterval, config.Hysteresis, stop, debug)
	if err != nil {
		return nil, err
	}
	err = engine.InitAmdGpu(*config.AmdGpu)
	if err != nil {
		return nil, err
	}
	if pers != nil {
		engine.SetPersistence(pers)
	}
	return engine, nil
}

// RunEngine runs the control loop and restores automatic fan control afterwards,
// unless the device could not even be initialized.
func RunEngine(engine *controller.Engine) error {
	deviceId := engine.GetDeviceId()

	result, err := engine.Run()
	if err != nil {
		ui.Error("Control loop for %s stopped: %s: %v", deviceId, result, err)
	}

	if result.RequiresReset() {
		resetErr := engine.ResetDevices()
		if resetErr != nil {
			ui.ErrorAndNotify("Fan speed stays in manual mode", "Unable to restore automatic fan control of %s: %v", deviceId, resetErr)
			if err == nil {
				err = fmt.Errorf("fan speed stays in manual mode: %w", resetErr)
			}
		} else {
			ui.Info("Restored automatic fan control of %s", deviceId)
		}
	}

	if err != nil {
		return fmt.Errorf("%s: %w", result, err)
	}
	return nil
}

func shutdownRestServer(rest *echo.Echo) {
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer timeoutCancel()
	if err := rest.Shutdown(timeoutCtx); err != nil {
		ui.Warning("Error stopping REST api: %v", err)
	} else {
		ui.Info("REST api stopped.")
	}
}
