// Package metrics defines the Prometheus collectors exposed by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// URLsCreatedTotal counts successfully created mappings.
	URLsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortly_urls_created_total",
		Help: "Total number of shortened URLs created",
	})

	// RedirectsTotal counts served redirects.
	RedirectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortly_redirects_total",
		Help: "Total number of redirects served",
	})

	// ShortCodeCollisionsTotal counts generated codes rejected because they
	// were already taken. A rising rate signals the code space filling up.
	ShortCodeCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortly_short_code_collisions_total",
		Help: "Total number of generated short codes discarded due to collisions",
	})
)
