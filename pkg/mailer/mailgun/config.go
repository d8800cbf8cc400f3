package mailgun

// Config holds Mailgun provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey string `env:"MAILGUN_API_KEY"`
	Domain string `env:"MAILGUN_DOMAIN"`
	// Region selects the API base; "eu" routes through the EU endpoint.
	Region string `env:"MAILGUN_REGION"`
}
