// Package auth implements the session lifecycle of the SDK: password-based
// sign-up and sign-in, a single current-session slot with write-through
// persistence, silent token renewal, and listener notification on every
// transition.
//
// The manager talks to the backend only through the API interface and
// persists through the storage.Store interface, so both collaborators can be
// substituted in tests.
//
// Basic usage:
//
//	manager := auth.New(
//		auth.WithAPI(auth.NewRESTAPI(transportClient)),
//		auth.WithStore(store),
//	)
//	manager.Restore(ctx)
//
//	unsubscribe := manager.OnAuthStateChange(auth.NewListenerFunc(
//		func(event auth.Event, session *auth.Session) {
//			// react to SIGNED_IN, SIGNED_OUT, TOKEN_REFRESHED, ...
//		},
//	))
//	defer unsubscribe()
//
//	session, err := manager.SignInWithPassword(ctx, auth.Credentials{
//		Email:    "user@example.com",
//		Password: "secret",
//	})
//
// Silent refresh fires a configurable margin (default 60s) before the access
// token expires and fails closed: a session that cannot be renewed is
// cleared and SIGNED_OUT is emitted.
package auth
