// Command pinguino-server runs the chat router and its supporting
// ambient services (health checks, metrics, system-metrics sampling).
// Flags are cobra-driven with environment variables as a fallback rather
// than the only configuration surface.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hasirciogluhq/pinguino-chat/internal/core"
	"github.com/hasirciogluhq/pinguino-chat/internal/healthz"
	"github.com/hasirciogluhq/pinguino-chat/internal/sysmetrics"
	"github.com/hasirciogluhq/pinguino-chat/internal/telemetry"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Fatal("pinguino-server exited with error")
	}
}

func newRootCmd() *cobra.Command {
	cfg := core.DefaultConfig()
	healthAddr := envOr("PINGUINO_HEALTH_ADDR", ":8081")

	cmd := &cobra.Command{
		Use:   "pinguino-server",
		Short: "Runs the pinguino chat router",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, healthAddr)
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", envOr("PINGUINO_HOST", cfg.Host), "bind host")
	cmd.Flags().IntVar(&cfg.Port, "port", envIntOr("PINGUINO_PORT", cfg.Port), "bind port")
	cmd.Flags().IntVar(&cfg.Capacity, "capacity", envIntOr("PINGUINO_CAPACITY", cfg.Capacity), "broadcast channel capacity")
	cmd.Flags().StringVar(&healthAddr, "health-addr", healthAddr, "health/readiness/metrics bind address")

	return cmd
}

func run(cfg core.Config, healthAddr string) error {
	log := logrus.StandardLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sink := telemetry.NewPrometheusSink(telemetry.NoopSink{})

	hs := healthz.NewServer(healthAddr, log)
	hs.Start()
	defer func() { _ = hs.Stop(context.Background()) }()

	sampler := sysmetrics.NewSampler(sink, log)
	go func() { _ = sampler.Run(ctx) }()

	router := core.NewRouterBuilder().
		Host(cfg.Host).
		Port(cfg.Port).
		Capacity(cfg.Capacity).
		Sink(sink).
		Logger(log).
		Build()

	go func() {
		<-router.Ready()
		hs.SetReady(true)
		log.WithField("addr", router.Addr()).Info("pinguino-server listening")
	}()

	return router.Run(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
