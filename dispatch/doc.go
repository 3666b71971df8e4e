// Package dispatch decorates API requests with the session token and watches
// responses for the account status header.
//
// A Dispatcher computes the authorization header from the current session on
// every request and, on every response, compares the status reported by the
// server with the user the client believes it has. When the account was
// deactivated or its editor/admin flags changed, the Navigator is sent to the
// login path once and the dispatcher stays invalidated. Response processing is
// always delegated to the wrapped Handler and its result returned unchanged.
package dispatch
