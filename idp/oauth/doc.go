/*
Package oauth implements idp.Provider over an OAuth2 authorization code flow.

A Config is built once per process.
Each request loads its own Session, which completes a pending code exchange
when the request is the provider's redirect back to trailhead.

	cfg, err := oauth.NewConfig("client-id", "client-secret", "https://example.com/auth/callback", oauth.WithGoogle())
	p, err := cfg.Load(ctx, w, r, sess)
	if p.IsSignedIn() {
		tok, err := p.Token(ctx)
	}
*/
package oauth
