// Package recommend turns untrusted agent output into configuration writes.
//
// Input is a JSON array of {serverId, reason} records, typically pasted by
// a user from an external agent. Nothing in it is trusted: records are
// individually validated, filtered against the catalog, and only then
// allowed to drive a write. The loader is a single linear pass with no
// retries; a failed write triggers a best-effort restore of the prior
// document.
package recommend
