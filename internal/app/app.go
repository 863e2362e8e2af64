package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voicelinehq/call-webhooks-api/internal/clients/crm"
	"github.com/voicelinehq/call-webhooks-api/internal/clients/telephony"
	"github.com/voicelinehq/call-webhooks-api/internal/config"
	"github.com/voicelinehq/call-webhooks-api/internal/controllers/ingest"
	"github.com/voicelinehq/call-webhooks-api/internal/services/dispatcher"
	"github.com/voicelinehq/call-webhooks-api/internal/services/replayguard"
	"github.com/voicelinehq/call-webhooks-api/internal/signature"
)

// CreateServers wires the clients, dispatcher and controller together and
// returns the ready-to-run fiber app.
func CreateServers(ctx context.Context, settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	telephonyClient, err := telephony.New(settings.TelephonyAPIURL, settings.TelephonyAPIKey, logger, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create telephony client: %w", err)
	}

	crmClient, err := crm.New(settings.CRMAPIURL, settings.CRMAPIKey, logger, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create CRM client: %w", err)
	}

	validator := signature.NewValidator(signature.Config{Secret: settings.WebhookSecret})
	guard := replayguard.New(signature.ReplayWindow)
	eventDispatcher := dispatcher.New(telephonyClient, crmClient)

	controller := ingest.NewController(validator, guard, eventDispatcher)
	return CreateFiberApp(logger, controller, settings), nil
}

// CreateFiberApp sets up the routes and middleware around a controller.
func CreateFiberApp(logger zerolog.Logger, controller *ingest.Controller, settings *config.Settings) *fiber.App {
	logger.Info().Msg("Starting Call Webhooks API...")

	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		ProxyHeader:           settings.ProxyHeader,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)

	app.Get("/health", controller.Health)
	app.Post("/webhook", controller.ReceiveWebhook)
	app.Post("/sms", controller.ReceiveSMS)

	return app
}

// ErrorHandler renders controller errors as {"detail": ...}. Rich errors keep
// their status code and external message; anything else becomes a generic 500
// with the cause logged server side only.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal server error"

	var fiberErr *fiber.Error
	if richErr, ok := richerrors.AsRichError(err); ok {
		if richErr.Code >= 400 {
			code = richErr.Code
		}
		if richErr.ExternalMsg != "" {
			detail = richErr.ExternalMsg
		}
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		detail = fiberErr.Message
	}

	if code >= 500 {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Int("status", code).Msg("Request failed")
	}

	return c.Status(code).JSON(fiber.Map{"detail": detail})
}
