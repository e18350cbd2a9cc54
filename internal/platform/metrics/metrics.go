package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered     prometheus.Counter
	LoginsFailed        prometheus.Counter
	RecordsCreated      prometheus.Counter
	RecordsUpdated      prometheus.Counter
	RecordsDeleted      prometheus.Counter
	AuditEntriesWritten prometheus.Counter
	AuditEntriesDropped prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics on a specific registerer so tests can use
// isolated registries.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_users_registered_total",
			Help: "Total number of users registered",
		}),
		LoginsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_logins_failed_total",
			Help: "Total number of failed login attempts",
		}),
		RecordsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_records_created_total",
			Help: "Total number of employee records created",
		}),
		RecordsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_records_updated_total",
			Help: "Total number of employee records updated",
		}),
		RecordsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_records_deleted_total",
			Help: "Total number of employee records deleted",
		}),
		AuditEntriesWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_audit_entries_written_total",
			Help: "Total number of audit log entries persisted",
		}),
		AuditEntriesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_audit_entries_dropped_total",
			Help: "Total number of audit log entries dropped before persistence",
		}),
	}
}
