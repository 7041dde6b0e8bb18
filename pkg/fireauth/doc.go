/*
Package fireauth is a typed client for the Firebase Authentication REST
API, covering the identity-toolkit account endpoints and the secure-token
exchange endpoint.

# Overview

The package is organized around two main types:

  - Client: unauthenticated operations (sign-up, sign-in, out-of-band
    email flows) and the entry point that mints sessions
  - Session: authenticated per-user operations with one-shot automatic
    token renewal

Create a Client with an API key and sign in to obtain a Session:

	client, err := fireauth.NewClient(fireauth.Config{
		APIKey: os.Getenv("FIREBASE_API_KEY"),
	})

	session, err := client.SignInWithEmailPassword(ctx, email, password)

	// Resume a session persisted from an earlier run.
	session = client.SessionFromTokens(savedPair)

# Session Ownership

A Session is immutable. Every authenticated operation consumes the
receiver and, on success, returns a successor Session carrying the
current token pair:

	session, user, err := session.GetUserData(ctx)
	session, err = session.ChangeEmail(ctx, "new@example.com")

Rebind the returned Session every time; calling an operation on a handle
that has already been consumed fails with ErrSessionConsumed and performs
no network traffic. A failed operation is terminal for that handle: no
successor is returned and the caller must sign in again or rebuild the
session from persisted tokens.

# Automatic Token Renewal

The provider can reject an ID token at any moment. When an operation
fails with the credential-invalid classification, the session exchanges
its refresh token for a new pair and repeats the call exactly once. Any
other failure, a repeat rejection, or a failed exchange propagates
immediately. Renewal can also be driven explicitly:

	session, err = session.Refresh(ctx)

# Error Classification

Remote failures surface as *APIError. The provider's message string is
mapped onto the ErrorCode constants; messages outside the known set keep
their verbatim text under ErrorCodeUnknown:

	_, err := client.SignInWithEmailPassword(ctx, email, password)
	var apiErr *fireauth.APIError
	if errors.As(err, &apiErr) && apiErr.Code == fireauth.ErrorCodeInvalidPassword {
		// prompt the user again
	}

# Federated Sign-In

Sign in with a credential obtained from an identity provider's own OAuth
flow:

	cred := fireauth.GoogleIDToken(googleToken)
	session, err := client.SignInWithOAuthCredential(ctx, redirectURI, cred)

The same credential shape links additional providers onto an existing
account via Session.LinkWithOAuthCredential.
*/
package fireauth
