/*
Package auth reconciles the identity provider's session with the backend's application session.

Phases

A Bridge starts out Initializing until the identity provider is loaded.
Bootstrap then moves it to Resolving while the current user is fetched,
and it settles on Authenticated or Unauthenticated.
SignInWithToken and SignOut pass back through Resolving.

The identity provider only triggers resolution.
Whether someone is authenticated is decided by the backend alone:
a Bridge is Authenticated exactly when it holds a current user.

	provider \ app session | present    | absent
	-----------------------+------------+----------------
	signed in              | fetch user | Unauthenticated
	signed out             | fetch user | Unauthenticated

A stale application session - the backend answering 401 to a bootstrap fetch - signs the browser out of both.

Lifetime

A Service is constructed once per process.
It builds a Bridge for each request, which middleware places on the request's context.
*/
package auth
