// Package calendar provides a client for the Google Calendar API.
//
// Event listing treats the requested window as half-open: an event is
// included when its start falls at or after the lower bound and strictly
// before the upper bound, regardless of how far it extends past the
// window. Updates are merge-patches: only the fields the caller sets are
// sent upstream, everything else is left untouched.
package calendar
