package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_auth_attempts_total",
			Help: "Admin authentication attempts partitioned by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	dataOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_data_operations_total",
			Help: "Privileged data operations partitioned by action and outcome",
		},
		[]string{"action", "outcome"},
	)
)

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
