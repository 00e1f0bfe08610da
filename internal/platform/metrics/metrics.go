// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package metrics declares the Prometheus collectors exported on /metrics.

Collectors are package-level and registered once on the default registry, so
any layer can record without threading a handle through constructors.

Families:

  - Locality: searches by outcome, index builds by result, index size.
  - Catalogue: contact messages and uploads.
  - HTTP: request duration by method and status class.
  - Postgres: pool connections, registered at startup by [RegisterPoolStats].
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// # Outcome Labels

const (
	OutcomeTooShort    = "too_short"
	OutcomeHit         = "hit"
	OutcomeMiss        = "miss"
	OutcomeUnavailable = "unavailable"

	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)

var durationBuckets = []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 2500}

// # Collectors

var (
	LocalitySearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inmo_locality_searches_total",
		Help: "Locality typeahead queries by outcome",
	}, []string{"outcome"})

	LocalityIndexBuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inmo_locality_index_builds_total",
		Help: "Locality index build attempts by result",
	}, []string{"result"})

	LocalityIndexEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inmo_locality_index_entries",
		Help: "Entries in the published locality index",
	})

	ContactMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inmo_contact_messages_total",
		Help: "Contact messages stored",
	})

	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inmo_uploads_total",
		Help: "Image uploads by result",
	}, []string{"result"})

	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inmo_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: durationBuckets,
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(
		LocalitySearchesTotal,
		LocalityIndexBuildsTotal,
		LocalityIndexEntries,
		ContactMessagesTotal,
		UploadsTotal,
		HTTPRequestDurationMs,
	)
}

// ObserveRequest records one finished HTTP request. Status is bucketed by class ("2xx", "4xx").
func ObserveRequest(method string, status int, elapsed time.Duration) {
	class := strconv.Itoa(status/100) + "xx"
	HTTPRequestDurationMs.WithLabelValues(method, class).Observe(float64(elapsed.Milliseconds()))
}

// PoolStats is a snapshot of the database pool.
type PoolStats struct {
	Acquired int32
	Idle     int32
	Total    int32
}

// RegisterPoolStats exports pool gauges read from snapshot on every scrape.
func RegisterPoolStats(registerer prometheus.Registerer, snapshot func() PoolStats) error {
	gauges := []struct {
		name, help string
		read       func(PoolStats) int32
	}{
		{"inmo_db_pool_acquired_conns", "Connections checked out of the pool", func(s PoolStats) int32 { return s.Acquired }},
		{"inmo_db_pool_idle_conns", "Idle connections in the pool", func(s PoolStats) int32 { return s.Idle }},
		{"inmo_db_pool_total_conns", "Open connections in the pool", func(s PoolStats) int32 { return s.Total }},
	}

	for _, gauge := range gauges {
		read := gauge.read
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: gauge.name, Help: gauge.help}, func() float64 {
			return float64(read(snapshot()))
		})
		if err := registerer.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
