// Package ingest holds the HTTP controllers for the webhook receiver.
package ingest

import (
	"context"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voicelinehq/call-webhooks-api/internal/services/replayguard"
	"github.com/voicelinehq/call-webhooks-api/internal/signature"
)

// SignatureHeader is the header the provider puts the signature in.
const SignatureHeader = "X-Webhook-Signature"

// dispatchTimeout bounds the detached downstream dispatch after the provider
// has already been acknowledged.
const dispatchTimeout = 30 * time.Second

// EventDispatcher forwards an accepted event to downstream systems.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event *signature.Event)
}

// Controller handles /health, /webhook and /sms.
type Controller struct {
	validator   *signature.Validator
	replayGuard *replayguard.Guard
	dispatcher  EventDispatcher
}

func NewController(validator *signature.Validator, guard *replayguard.Guard, dispatcher EventDispatcher) *Controller {
	return &Controller{
		validator:   validator,
		replayGuard: guard,
		dispatcher:  dispatcher,
	}
}

// Health reports liveness.
func (ctl *Controller) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReceiveWebhook validates a signed delivery and acknowledges it. Downstream
// dispatch happens after the response is decided and never changes it.
func (ctl *Controller) ReceiveWebhook(c *fiber.Ctx) error {
	ingestID := uuid.New().String()
	clientIP := c.IP()
	logger := zerolog.Ctx(c.UserContext()).With().
		Str("ingest_id", ingestID).
		Str("client_ip", clientIP).
		Logger()

	// fasthttp reuses the request buffer after the handler returns; the body
	// must be copied before it crosses into the detached dispatch goroutine.
	body := append([]byte(nil), c.Body()...)
	event, verr := ctl.validator.Validate(clientIP, c.Get(SignatureHeader), body)
	if verr != nil {
		webhooksRejected.WithLabelValues(string(verr.Reason)).Inc()
		if verr.Reason == signature.ReasonMissingSecret {
			logger.Error().Str("reason", string(verr.Reason)).Msg("Webhook secret is not configured")
		} else {
			logger.Warn().Str("reason", string(verr.Reason)).Msg("Rejected webhook delivery")
		}
		return richerrors.Error{
			ExternalMsg: verr.Detail,
			Err:         verr,
			Code:        verr.Status,
		}
	}

	webhooksAccepted.Inc()
	if ctl.replayGuard != nil && ctl.replayGuard.Observe(event.Digest) {
		// A replayed-but-valid delivery is still acknowledged; webhook
		// endpoints confirm receipt regardless of processing outcome.
		webhookReplays.Inc()
		logger.Warn().
			Int64("signed_timestamp", event.Timestamp).
			Msg("Digest already seen inside the replay window")
	}
	logger.Info().
		Str("event_type", event.Type).
		Int64("signed_timestamp", event.Timestamp).
		Msg("Accepted webhook delivery")

	go func() {
		ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), dispatchTimeout)
		defer cancel()
		ctl.dispatcher.Dispatch(ctx, event)
	}()

	return c.JSON(fiber.Map{"status": "received"})
}

// ReceiveSMS logs an arbitrary form-encoded body and acknowledges it with a
// bare OK. There is no validation on this endpoint.
func (ctl *Controller) ReceiveSMS(c *fiber.Ctx) error {
	smsReceived.Inc()

	fields := zerolog.Dict()
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		fields.Str(string(key), string(value))
	})

	zerolog.Ctx(c.UserContext()).Info().
		Str("client_ip", c.IP()).
		Dict("form", fields).
		Msg("SMS form received")

	return c.SendString("OK")
}
