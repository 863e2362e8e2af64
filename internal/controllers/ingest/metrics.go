package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhooksAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhooks_accepted_total",
		Help: "Webhook deliveries that passed signature validation.",
	})
	webhooksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhooks_rejected_total",
		Help: "Webhook deliveries rejected during validation, by reason.",
	}, []string{"reason"})
	webhookReplays = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_replays_observed_total",
		Help: "Accepted deliveries whose digest was already seen inside the replay window.",
	})
	smsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_forms_received_total",
		Help: "Form submissions received on /sms.",
	})
)
