// Package httpserver runs the ivrkit HTTP API with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	go func() { <-srv.Ready(); log.Info("up", "addr", srv.Addr()) }()
//	err := srv.Run(ctx, router)
//
// Run blocks until ctx is cancelled and then shuts the server down within the
// configured shutdown timeout. Listen failures are wrapped with ErrStart,
// shutdown failures with ErrShutdown. HealthHandler serves liveness and
// readiness probes.
package httpserver
