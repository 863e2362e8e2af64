package config

// Settings contains the application config
type Settings struct {
	Port        int    `env:"PORT"`
	MonPort     int    `env:"MON_PORT"`
	EnablePprof bool   `env:"ENABLE_PPROF"`
	LogLevel    string `env:"LOG_LEVEL"`
	ServiceName string `env:"SERVICE_NAME"`

	// WebhookSecret is the shared HMAC signing secret. An empty value is a
	// deployment fault surfaced as a 500 on /webhook, not a startup failure.
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	TelephonyAPIURL string `env:"TELEPHONY_API_URL"`
	TelephonyAPIKey string `env:"TELEPHONY_API_KEY"`
	CRMAPIURL       string `env:"CRM_API_URL"`
	CRMAPIKey       string `env:"CRM_API_KEY"`

	// ProxyHeader, when set (e.g. X-Forwarded-For behind the load balancer),
	// tells fiber where to read the real client IP from.
	ProxyHeader string `env:"PROXY_HEADER"`
}
