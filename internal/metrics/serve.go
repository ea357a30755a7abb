package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/disk-led/internal/logger"
)

// readHeaderTimeout bounds slow scrapers.
const readHeaderTimeout = 5 * time.Second

// Serve exposes the registry on /metrics at address until ctx is done.
// It returns once the listener is bound; serving continues in the background.
func (m *Metrics) Serve(ctx context.Context, address string) (net.Addr, error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		_ = server.Close()
	}()

	go func() {
		if err := server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorKV(ctx, "Metrics server stopped", "error", err)
		}
	}()

	logger.InfoKV(ctx, "Metrics listening", "address", lis.Addr().String())

	return lis.Addr(), nil
}
