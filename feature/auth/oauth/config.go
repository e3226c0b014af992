package oauth

// Config holds the third-party sign-in credentials. Leaving a provider's
// fields empty disables that provider's endpoints.
type Config struct {
	// GoogleClientID is the OAuth client id for Google sign-in.
	GoogleClientID string `mapstructure:"google_client_id" default:""`
	// GoogleClientSecret is the OAuth client secret for Google sign-in.
	GoogleClientSecret string `mapstructure:"google_client_secret" default:""`
	// GoogleRedirectURI is the callback URL registered with Google.
	GoogleRedirectURI string `mapstructure:"google_redirect_uri" default:"http://localhost:8080/auth/google/callback"`

	// LudopediaAppID is the application id issued by Ludopedia.
	LudopediaAppID string `mapstructure:"ludopedia_app_id" default:""`
	// LudopediaAppKey is the application key issued by Ludopedia.
	LudopediaAppKey string `mapstructure:"ludopedia_app_key" default:""`
	// LudopediaRedirectURI is the callback URL registered with Ludopedia.
	LudopediaRedirectURI string `mapstructure:"ludopedia_redirect_uri" default:"http://localhost:8080/auth/ludopedia/callback"`
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// LudopediaEnabled reports whether Ludopedia account linking is configured.
func (c Config) LudopediaEnabled() bool {
	return c.LudopediaAppID != "" && c.LudopediaAppKey != ""
}
