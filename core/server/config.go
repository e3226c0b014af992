package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// FrontendURL is the base URL of the web frontend, used as the target
	// for OAuth redirects after third-party sign-in completes.
	FrontendURL string `mapstructure:"frontend_url" default:"http://localhost:3000"`
}
