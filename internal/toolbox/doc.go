// Package toolbox implements the tool-dispatch core of the server: the
// registry of schema-described tools, argument validation and coercion,
// and the dispatcher that turns a tool-call request into a normalized
// result.
//
// The dispatcher is oblivious to which Google service a tool talks to.
// Each tool is a Definition whose Handler receives already-validated
// arguments and returns either a payload or an error; the dispatcher
// classifies errors into a stable taxonomy (see Kind) so callers can
// branch without knowing which upstream API failed.
//
// Retry policy: read operations are retried on transient upstream
// failures with bounded exponential backoff; mutating operations are
// invoked at most once per dispatch. A mutating call that times out has
// an unknown upstream outcome and is reported as KindIndeterminate so
// the caller knows not to blindly retry.
package toolbox
