package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/voicelinehq/call-webhooks-api/internal/clients/crm"
	"github.com/voicelinehq/call-webhooks-api/internal/clients/telephony"
	"github.com/voicelinehq/call-webhooks-api/internal/signature"
)

func newDispatcherAndMocks(t *testing.T) (*Dispatcher, *MockTelephonyClient, *MockCRMClient) {
	ctrl := gomock.NewController(t)
	telephonyMock := NewMockTelephonyClient(ctrl)
	crmMock := NewMockCRMClient(ctrl)
	return New(telephonyMock, crmMock), telephonyMock, crmMock
}

// eventFromBody runs a body through the real validator so dispatch tests use
// the same Event shape the controller produces.
func eventFromBody(t *testing.T, body string) *signature.Event {
	t.Helper()
	v := signature.NewValidator(signature.Config{
		Secret:     "test-secret",
		AllowedIPs: []string{"127.0.0.1"},
	})
	raw := []byte(body)
	ts := time.Now().Unix()
	event, verr := v.Validate("127.0.0.1", signature.Header("test-secret", ts, raw), raw)
	require.Nil(t, verr)
	return event
}

func TestDispatcher_CallInitiationFailure(t *testing.T) {
	t.Parallel()

	t.Run("registers a callback", func(t *testing.T) {
		d, telephonyMock, _ := newDispatcherAndMocks(t)

		event := eventFromBody(t, `{
			"type": "call_initiation_failure",
			"data": {"agent_id": "agent-1", "to_number": "+15555550100", "reason": "dial_failed"}
		}`)

		telephonyMock.EXPECT().
			RegisterCallback(gomock.Any(), telephony.RegisterCallbackRequest{
				AgentID:  "agent-1",
				ToNumber: "+15555550100",
				Reason:   "dial_failed",
			}).
			Return(nil)

		d.Dispatch(context.Background(), event)
	})

	t.Run("callback failure is swallowed", func(t *testing.T) {
		d, telephonyMock, _ := newDispatcherAndMocks(t)

		event := eventFromBody(t, `{"type": "call_initiation_failure", "data": {"agent_id": "agent-1"}}`)

		telephonyMock.EXPECT().
			RegisterCallback(gomock.Any(), gomock.Any()).
			Return(errors.New("provider is down"))

		// Must not panic or surface the error.
		d.Dispatch(context.Background(), event)
	})

	t.Run("empty data skips the callback", func(t *testing.T) {
		d, _, _ := newDispatcherAndMocks(t)

		event := eventFromBody(t, `{"type": "call_initiation_failure", "data": {}}`)

		// No expectations set: any client call would fail the test.
		d.Dispatch(context.Background(), event)
	})
}

func TestDispatcher_PostCallTranscription(t *testing.T) {
	t.Parallel()

	t.Run("records a CRM activity", func(t *testing.T) {
		d, _, crmMock := newDispatcherAndMocks(t)

		event := eventFromBody(t, `{
			"type": "post_call_transcription",
			"data": {"call_id": "call-42", "contact_id": "contact-9", "transcript": "hi", "duration_seconds": 31}
		}`)

		crmMock.EXPECT().
			AddCallActivity(gomock.Any(), crm.CallActivity{
				ContactID:       "contact-9",
				CallID:          "call-42",
				Transcript:      "hi",
				DurationSeconds: 31,
			}).
			Return(nil)

		d.Dispatch(context.Background(), event)
	})

	t.Run("CRM failure is swallowed", func(t *testing.T) {
		d, _, crmMock := newDispatcherAndMocks(t)

		event := eventFromBody(t, `{
			"type": "post_call_transcription",
			"data": {"call_id": "call-42", "contact_id": "contact-9"}
		}`)

		crmMock.EXPECT().
			AddCallActivity(gomock.Any(), gomock.Any()).
			Return(errors.New("CRM is down"))

		d.Dispatch(context.Background(), event)
	})

	t.Run("missing contact skips the CRM update", func(t *testing.T) {
		d, _, _ := newDispatcherAndMocks(t)

		event := eventFromBody(t, `{"type": "post_call_transcription", "data": {"call_id": "call-42"}}`)

		d.Dispatch(context.Background(), event)
	})
}

func TestDispatcher_UnhandledType(t *testing.T) {
	t.Parallel()

	d, _, _ := newDispatcherAndMocks(t)

	event := eventFromBody(t, `{"type": "agent_hangup", "data": {"call_id": "call-42"}}`)

	// Unknown types are logged and dropped without touching either client.
	d.Dispatch(context.Background(), event)
}
