// Package transport builds the HTTP client shared by the Steam Web API client
// and the crowd size database client.
//
// The client carries dial, TLS handshake and response header timeouts so a dead
// endpoint fails instead of hanging the run, and stamps a User-Agent on every
// request. There is no retry policy: a failed call is reported to the caller.
//
// # Usage
//
//	httpClient := transport.NewHTTPClient(cfg.Crowd.Transport)
package transport
