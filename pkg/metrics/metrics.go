package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Guest web app.
var (
	TokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invite_token_verifications_total",
		Help: "Invitation token verifications by outcome (valid, invalid)",
	}, []string{"result"})

	RSVPSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invite_rsvp_submissions_total",
		Help: "RSVP submissions sent by the web app, by event and outcome",
	}, []string{"event", "result"})
)

// RSVP API server.
var (
	APIRSVPs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invite_api_rsvp_total",
		Help: "RSVPs stored by the API, by event and answer",
	}, []string{"event", "accept"})

	APILookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invite_api_lookup_failures_total",
		Help: "Requests for an unknown invitation token, by endpoint",
	}, []string{"endpoint"})
)

// Outcome labels.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
