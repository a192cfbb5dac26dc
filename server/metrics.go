// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the server metrics, in their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	// Messages counts the applied messages by name.
	Messages *prometheus.CounterVec

	// Rejected counts the messages that could not be decoded, by reason.
	Rejected *prometheus.CounterVec

	// Commands counts the executed commands by kind and result.
	Commands *prometheus.CounterVec

	// ActiveParts is the number of active scene parts.
	ActiveParts prometheus.Gauge

	// Parts is the number of registered scene parts.
	Parts prometheus.Gauge

	// Connections is the number of open client connections.
	Connections prometheus.Gauge

	// FrameSeconds is the duration of the update loop frames.
	FrameSeconds prometheus.Histogram
}

// NewMetrics returns new metrics in a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Messages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallscope_messages_total",
			Help: "Messages applied, by name.",
		}, []string{"name"}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallscope_messages_rejected_total",
			Help: "Messages ignored because they could not be decoded, by reason.",
		}, []string{"reason"}),
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallscope_commands_total",
			Help: "Commands executed, by kind and result.",
		}, []string{"kind", "result"}),
		ActiveParts: f.NewGauge(prometheus.GaugeOpts{
			Name: "wallscope_active_parts",
			Help: "Number of active scene parts.",
		}),
		Parts: f.NewGauge(prometheus.GaugeOpts{
			Name: "wallscope_parts",
			Help: "Number of registered scene parts, active or not.",
		}),
		Connections: f.NewGauge(prometheus.GaugeOpts{
			Name: "wallscope_connections",
			Help: "Number of open client connections.",
		}),
		FrameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wallscope_frame_seconds",
			Help:    "Duration of update loop frames.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}
}
