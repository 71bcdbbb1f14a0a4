// Package internaldefs holds the shared metric definitions consumed by
// the exporter packages. It exists so exporters agree on metric names
// without re-importing each other.
package internaldefs

import (
	authgate "github.com/vkm-dev/authgate"
)

// CounterDef binds an engine counter to its exported name.
type CounterDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// CounterDefs enumerates every exported engine counter.
var CounterDefs = []CounterDef{
	{ID: authgate.MetricIssueSuccess, Name: "authgate_issue_success_total", Help: "Successful token issuances."},
	{ID: authgate.MetricIssueFailure, Name: "authgate_issue_failure_total", Help: "Issuance attempts with mismatched credentials."},
	{ID: authgate.MetricVerifySuccess, Name: "authgate_verify_success_total", Help: "Tokens that passed signature, structure, expiry, and revocation checks."},
	{ID: authgate.MetricVerifyInvalid, Name: "authgate_verify_invalid_total", Help: "Tokens rejected or discarded for decode, structural, or expiry failures."},
	{ID: authgate.MetricVerifyRevoked, Name: "authgate_verify_revoked_total", Help: "Tokens rejected or discarded as revoked."},
	{ID: authgate.MetricRevocations, Name: "authgate_revocations_total", Help: "Token ids recorded in the revocation set."},
	{ID: authgate.MetricAnonymous, Name: "authgate_anonymous_total", Help: "Requests resolved to the anonymous principal."},
	{ID: authgate.MetricRejected, Name: "authgate_rejected_total", Help: "Requests rejected by the gateway."},
}
