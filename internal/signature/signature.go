// Package signature validates signed webhook requests from the telephony
// provider. The provider signs every delivery with a shared secret and puts
// the result in a header of the form:
//
//	t=<unix timestamp>,v0=<hex hmac-sha256 of "<timestamp>.<raw body>">
//
// The validator checks the source IP against a fixed allow-list, enforces a
// 30 minute replay window on the signed timestamp, and recomputes the digest
// before it ever looks at the payload.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ReplayWindow is the maximum accepted age of a signed timestamp. Deliveries
// older than this are rejected even when the digest matches.
const ReplayWindow = 1800 * time.Second

// digestPrefix identifies the signature scheme version.
const digestPrefix = "v0="

// AllowedSourceIPs is the fixed set of provider egress addresses permitted to
// call the webhook endpoint. The provider publishes these as static; they are
// intentionally not runtime configuration.
var AllowedSourceIPs = []string{
	"34.67.146.145",
	"34.136.33.74",
	"34.170.102.82",
	"35.202.128.14",
	"34.123.55.201",
	"104.197.12.88",
}

// Reason identifies why a delivery was rejected.
type Reason string

const (
	ReasonUnauthorizedIP   Reason = "unauthorized_ip"
	ReasonMissingHeader    Reason = "missing_header"
	ReasonMalformedHeader  Reason = "malformed_header"
	ReasonInvalidTimestamp Reason = "invalid_timestamp"
	ReasonStaleTimestamp   Reason = "stale_timestamp"
	ReasonMissingSecret    Reason = "missing_secret"
	ReasonMismatch         Reason = "signature_mismatch"
	ReasonInvalidJSON      Reason = "invalid_json"
	ReasonMissingEventType Reason = "missing_event_type"
)

// ValidationError is the rejection outcome of Validate. Detail is safe to
// return to the caller; the underlying cause for configuration faults is
// logged server side only.
type ValidationError struct {
	Reason Reason
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("webhook rejected (%s): %s", e.Reason, e.Detail)
}

// Event is an accepted, parsed webhook delivery.
type Event struct {
	// Type is the event type field from the payload, never empty.
	Type string
	// Payload is the full decoded JSON body.
	Payload map[string]any
	// Raw is the exact body bytes the digest was computed over.
	Raw []byte
	// Timestamp is the signed unix timestamp from the header.
	Timestamp int64
	// Digest is the v0-prefixed hex digest presented by the caller.
	Digest string
}

// Config carries everything Validate depends on, so the validator is a pure
// function of its inputs.
type Config struct {
	// Secret is the shared signing secret. Empty means the deployment is
	// misconfigured; validation fails with a server fault.
	Secret string
	// AllowedIPs overrides AllowedSourceIPs, for tests.
	AllowedIPs []string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Validator checks incoming webhook deliveries against the shared secret and
// source allow-list. It holds no mutable state and is safe for concurrent use.
type Validator struct {
	secret  string
	allowed map[string]struct{}
	now     func() time.Time
}

func NewValidator(cfg Config) *Validator {
	ips := cfg.AllowedIPs
	if ips == nil {
		ips = AllowedSourceIPs
	}
	allowed := make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		allowed[ip] = struct{}{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Validator{
		secret:  cfg.Secret,
		allowed: allowed,
		now:     now,
	}
}

// Validate runs the full acceptance policy over a single delivery. The checks
// run in a fixed order and the first failure wins; the body is not parsed
// until the signature has been accepted.
func (v *Validator) Validate(clientIP string, header string, body []byte) (*Event, *ValidationError) {
	if _, ok := v.allowed[clientIP]; !ok {
		return nil, &ValidationError{
			Reason: ReasonUnauthorizedIP,
			Status: http.StatusForbidden,
			Detail: "Unauthorized IP",
		}
	}

	if header == "" {
		return nil, &ValidationError{
			Reason: ReasonMissingHeader,
			Status: http.StatusBadRequest,
			Detail: "Missing signature header",
		}
	}

	parts := strings.Split(header, ",")
	if len(parts) != 2 {
		return nil, &ValidationError{
			Reason: ReasonMalformedHeader,
			Status: http.StatusBadRequest,
			Detail: "Malformed signature header",
		}
	}

	tsField, ok := strings.CutPrefix(parts[0], "t=")
	if !ok {
		return nil, &ValidationError{
			Reason: ReasonInvalidTimestamp,
			Status: http.StatusBadRequest,
			Detail: "Invalid signature timestamp",
		}
	}
	ts, err := strconv.ParseInt(tsField, 10, 64)
	if err != nil {
		return nil, &ValidationError{
			Reason: ReasonInvalidTimestamp,
			Status: http.StatusBadRequest,
			Detail: "Invalid signature timestamp",
		}
	}

	if ts < v.now().Add(-ReplayWindow).Unix() {
		return nil, &ValidationError{
			Reason: ReasonStaleTimestamp,
			Status: http.StatusBadRequest,
			Detail: "Signature timestamp is too old",
		}
	}

	if v.secret == "" {
		// Deployment fault, not a client fault. Keep the external detail
		// generic; the controller logs the reason.
		return nil, &ValidationError{
			Reason: ReasonMissingSecret,
			Status: http.StatusInternalServerError,
			Detail: "Internal server error",
		}
	}

	expected := Sign(v.secret, ts, body)
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return nil, &ValidationError{
			Reason: ReasonMismatch,
			Status: http.StatusBadRequest,
			Detail: "Signature mismatch",
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ValidationError{
			Reason: ReasonInvalidJSON,
			Status: http.StatusBadRequest,
			Detail: "Invalid JSON payload",
		}
	}

	eventType, _ := payload["type"].(string)
	if eventType == "" {
		return nil, &ValidationError{
			Reason: ReasonMissingEventType,
			Status: http.StatusBadRequest,
			Detail: "Missing event type",
		}
	}

	return &Event{
		Type:      eventType,
		Payload:   payload,
		Raw:       body,
		Timestamp: ts,
		Digest:    parts[1],
	}, nil
}

// Sign computes the v0-prefixed hex digest for a timestamp and body. It is
// the inverse of Validate's comparison and is exported for the signer tool
// and for tests.
func Sign(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	return digestPrefix + hex.EncodeToString(mac.Sum(nil))
}

// Header builds a complete signature header for a timestamp and body.
func Header(secret string, timestamp int64, body []byte) string {
	return fmt.Sprintf("t=%d,%s", timestamp, Sign(secret, timestamp, body))
}
