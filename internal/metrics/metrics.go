// Package metrics holds the prometheus collectors for the testimonial
// pipeline and the admin session guard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "personal_site"

var (
	TestimonialSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "testimonial_submissions_total",
		Help:      "Testimonial submissions by outcome.",
	}, []string{"result"})

	TestimonialVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "testimonial_verifications_total",
		Help:      "Verification link redemptions by outcome.",
	}, []string{"result"})

	TestimonialModerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "testimonial_moderations_total",
		Help:      "Admin approvals and deletions.",
	}, []string{"action"})

	AdminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_logins_total",
		Help:      "Admin login attempts by outcome.",
	}, []string{"result"})

	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Requests rejected by the bearer guard, by reason.",
	}, []string{"reason"})

	MailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_failures_total",
		Help:      "Outbound mails the transport did not accept.",
	})

	SweptRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swept_records_total",
		Help:      "Expired rows removed by the sweeper, by table.",
	}, []string{"table"})
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)
