// Package api provides HTTP client functionality for communicating with the
// Maileroo API. It handles authentication, request serialization and the
// normalization of the {success, message, data} response envelope.
//
// # Requests
//
// Every request carries an "Authorization: Bearer <key>" header, a fixed
// User-Agent identifying this SDK and an X-Request-ID correlation header.
// Requests are never retried.
//
// # Envelopes
//
// [DecodeEnvelope] turns a response body into either a [Success] or a
// [Failure]. Bodies that are not JSON objects, or that lack a boolean
// "success" member, are reported as [apierrors.StateError]. Typed values are
// pulled out of a Success with [Success.String], [Success.Strings] and
// [Success.Object].
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
