// Package observability starts the tracing, profiling and debug endpoints of
// the API process and tears them down in reverse order.
package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/predipto/internal/config"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// Stack is the set of running observability components.
type Stack struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Setup starts whatever cfg enables. On error everything already started is
// stopped again.
func Setup(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	s.tracing = s.startTracing(cfg)

	if err := s.startProfiler(cfg); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	s.startPprof(cfg)

	return s, nil
}

func (s *Stack) startTracing(cfg config.Config) bool {
	switch {
	case !cfg.UptraceEnabled:
		s.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return false
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		s.logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return false
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("predipto.storage", cfg.StorageDriver)),
	)
	s.logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)
	return true
}

func (s *Stack) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		s.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"storage": cfg.StorageDriver,
		},
		// Scoring fans out over worker pools, so goroutine and mutex
		// profiles matter more than block profiles here.
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return err
	}

	s.profiler = profiler
	s.logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
	)
	return nil
}

func (s *Stack) startPprof(cfg config.Config) {
	if !cfg.PprofEnabled {
		s.logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	s.pprof = &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := s.pprof
	go func() {
		s.logger.Info("pprof server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server failed", "error", err)
		}
	}()
}

// Shutdown stops the debug server, the profiler and finally flushes traces.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.pprof != nil {
		if err := s.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		s.pprof = nil
	}
	if s.profiler != nil {
		if err := s.profiler.Stop(); err != nil {
			errs = append(errs, err)
		}
		s.profiler = nil
	}
	if s.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		s.tracing = false
	}
	return errors.Join(errs...)
}

func (s *Stack) Tracing() bool {
	return s != nil && s.tracing
}
