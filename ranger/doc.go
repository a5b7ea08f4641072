/*
Package ranger builds and runs a trailhead app from its environment.

	cfg, err := ranger.NewConfig()
	rng, err := ranger.New(cfg)
	err = rng.Guide()

[*Ranger.Guide] serves every page of the account dashboard on [DefaultPort] (:3000),
behind a reverse proxy terminating TLS.
It returns once [*Ranger.Shutdown] or the func [*Ranger.Cancel] returns is called,
or the process receives SIGINT, SIGTERM, SIGHUP or SIGQUIT.

# Configuration

A developer configures a trailhead app through environment variables.
Required values can be discovered by inspecting the error [NewConfig] returns.

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BACKEND_SESSION_COOKIE: the cookie the backend sets its application session in; default: sid
  - BACKEND_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for each backend call; default: 10s
  - BACKEND_URL: the base URL of the backend API; default: http://localhost:8080/api
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can contact XYPN at; default: hello@xyplanningnetwork.com
  - ENVIRONMENT: the environment the application is running in; cf. [trailhead.Environment]
  - HOST: the host the application is running on
  - IDP_AUTH_URL: the identity provider's authorization endpoint; not needed for IDP_PROVIDER=google
  - IDP_CLIENT_ID: the client ID trailhead is registered under with the identity provider
  - IDP_CLIENT_SECRET: the client secret paired with IDP_CLIENT_ID
  - IDP_PROVIDER: "google" or left unset for any other OAuth2 provider
  - IDP_SCOPES: comma or space separated scopes to request; default: openid email profile
  - IDP_TOKEN_URL: the identity provider's token endpoint; not needed for IDP_PROVIDER=google
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - REDIS_PASSWORD: the password for authenticating a connection to Redis
  - REDIS_URL: when set, sessions and idempotent responses are stored in Redis
  - SENTRY_DSN: when set, errors are reported to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 15s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_MAX_AGE: the number of seconds a session lasts; default: 86400
*/
package ranger
