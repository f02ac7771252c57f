// Package httpclient provides the shared HTTP plumbing used by the backend
// clients: a file-based response cache, retry with exponential backoff, and a
// base client that memoizes keyed lookups.
//
// The backing services (GitHub, the advisory database mirror) publish crawler
// courtesy policies; the cache and the per-key memoization exist to keep the
// outbound call volume per session bounded. Every backend client in this
// module goes through [Client.Cached] rather than issuing raw requests.
package httpclient
