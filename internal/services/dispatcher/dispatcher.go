//go:generate go tool mockgen -source=dispatcher.go -destination=dispatcher_mock_test.go -package=dispatcher

// Package dispatcher routes accepted webhook events to downstream systems.
// Dispatch is fire-and-forget: failures are logged, never retried, and never
// change the HTTP response already sent to the provider.
package dispatcher

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/voicelinehq/call-webhooks-api/internal/clients/crm"
	"github.com/voicelinehq/call-webhooks-api/internal/clients/telephony"
	"github.com/voicelinehq/call-webhooks-api/internal/signature"
)

// Known event types. Adding a type means adding a case to Dispatch.
const (
	EventCallInitiationFailure = "call_initiation_failure"
	EventPostCallTranscription = "post_call_transcription"
)

type TelephonyClient interface {
	RegisterCallback(ctx context.Context, req telephony.RegisterCallbackRequest) error
}

type CRMClient interface {
	AddCallActivity(ctx context.Context, activity crm.CallActivity) error
}

// callInitiationFailureEvent is the payload shape for a failed call start.
type callInitiationFailureEvent struct {
	Data struct {
		AgentID  string `json:"agent_id"`
		ToNumber string `json:"to_number"`
		Reason   string `json:"reason"`
	} `json:"data"`
}

// postCallTranscriptionEvent is the payload shape for a finished call.
type postCallTranscriptionEvent struct {
	Data struct {
		CallID          string `json:"call_id"`
		ContactID       string `json:"contact_id"`
		Transcript      string `json:"transcript"`
		DurationSeconds int64  `json:"duration_seconds"`
	} `json:"data"`
}

// Dispatcher forwards accepted events to the telephony and CRM clients.
type Dispatcher struct {
	telephony TelephonyClient
	crm       CRMClient
}

func New(telephonyClient TelephonyClient, crmClient CRMClient) *Dispatcher {
	return &Dispatcher{
		telephony: telephonyClient,
		crm:       crmClient,
	}
}

// Dispatch forwards one accepted event. It never returns an error: the
// upstream provider has already been acknowledged, so downstream failures
// are logged and dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, event *signature.Event) {
	logger := zerolog.Ctx(ctx)

	switch event.Type {
	case EventCallInitiationFailure:
		var payload callInitiationFailureEvent
		if err := json.Unmarshal(event.Raw, &payload); err != nil {
			logger.Error().Err(err).Msg("Failed to decode call initiation failure payload")
			return
		}
		logger.Warn().
			Str("agent_id", payload.Data.AgentID).
			Str("to_number", payload.Data.ToNumber).
			Str("reason", payload.Data.Reason).
			Msg("Call initiation failed")
		if payload.Data.AgentID == "" {
			// Acknowledged upstream regardless; nothing to register without
			// an agent.
			logger.Info().Msg("Call initiation failure carried no agent data; skipping callback registration")
			return
		}
		err := d.telephony.RegisterCallback(ctx, telephony.RegisterCallbackRequest{
			AgentID:  payload.Data.AgentID,
			ToNumber: payload.Data.ToNumber,
			Reason:   payload.Data.Reason,
		})
		if err != nil {
			logger.Error().Err(err).Str("agent_id", payload.Data.AgentID).Msg("Failed to register callback")
		}

	case EventPostCallTranscription:
		var payload postCallTranscriptionEvent
		if err := json.Unmarshal(event.Raw, &payload); err != nil {
			logger.Error().Err(err).Msg("Failed to decode post call transcription payload")
			return
		}
		logger.Info().
			Str("call_id", payload.Data.CallID).
			Str("contact_id", payload.Data.ContactID).
			Int64("duration_seconds", payload.Data.DurationSeconds).
			Int("transcript_len", len(payload.Data.Transcript)).
			Msg("Call transcription received")
		if payload.Data.ContactID == "" {
			logger.Info().Str("call_id", payload.Data.CallID).Msg("Transcription carried no contact; skipping CRM update")
			return
		}
		err := d.crm.AddCallActivity(ctx, crm.CallActivity{
			ContactID:       payload.Data.ContactID,
			CallID:          payload.Data.CallID,
			Transcript:      payload.Data.Transcript,
			DurationSeconds: payload.Data.DurationSeconds,
		})
		if err != nil {
			logger.Error().Err(err).Str("contact_id", payload.Data.ContactID).Msg("Failed to record call activity in CRM")
		}

	default:
		logger.Info().Str("event_type", event.Type).Msg("Unhandled event type")
	}
}
