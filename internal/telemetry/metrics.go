// Package telemetry provides Prometheus metrics for the bot.
package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	FeedPolls         prometheus.Counter
	FeedPollFailures  prometheus.Counter
	NotificationsSent prometheus.Counter
	CommandsHandled   prometheus.Counter
	CatalogErrors     prometheus.Counter
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		FeedPolls = promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgo_feed_polls_total",
			Help: "Number of feed poll ticks executed",
		})
		FeedPollFailures = promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgo_feed_poll_failures_total",
			Help: "Number of feed poll ticks that failed to fetch",
		})
		NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgo_notifications_sent_total",
			Help: "Number of feed novelty notifications posted",
		})
		CommandsHandled = promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgo_commands_handled_total",
			Help: "Number of chat commands handled",
		})
		CatalogErrors = promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgo_catalog_errors_total",
			Help: "Number of catalog requests that failed or returned malformed data",
		})
	})
}

// Inc helpers tolerate uninitialized metrics so instrumented code paths
// stay quiet under test.

func IncFeedPolls()         { inc(FeedPolls) }
func IncFeedPollFailures()  { inc(FeedPollFailures) }
func IncNotificationsSent() { inc(NotificationsSent) }
func IncCommandsHandled()   { inc(CommandsHandled) }
func IncCatalogErrors()     { inc(CatalogErrors) }

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// Serve exposes /metrics on addr. Blocks until the server fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
