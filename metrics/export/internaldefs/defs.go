package internaldefs

import (
	goIdentity "github.com/MrEthical07/goIdentity"
)

// CounterDef defines a public type used by goIdentity APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goIdentity.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: goIdentity.MetricRegisterSuccess, Name: "goidentity_register_success_total", Help: "Successful registrations."},
	{ID: goIdentity.MetricRegisterConflict, Name: "goidentity_register_conflict_total", Help: "Registrations rejected for a taken email or username."},
	{ID: goIdentity.MetricRegisterFailure, Name: "goidentity_register_failure_total", Help: "Registrations rejected for invalid input or store errors."},
	{ID: goIdentity.MetricLoginSuccess, Name: "goidentity_login_success_total", Help: "Successful login attempts."},
	{ID: goIdentity.MetricLoginFailure, Name: "goidentity_login_failure_total", Help: "Failed login attempts."},
	{ID: goIdentity.MetricLoginDisabled, Name: "goidentity_login_disabled_total", Help: "Login attempts rejected for a disabled account."},
	{ID: goIdentity.MetricRefreshSuccess, Name: "goidentity_refresh_success_total", Help: "Successful refresh operations."},
	{ID: goIdentity.MetricRefreshFailure, Name: "goidentity_refresh_failure_total", Help: "Failed refresh operations."},
	{ID: goIdentity.MetricIdentifySuccess, Name: "goidentity_identify_success_total", Help: "Successful identity resolutions."},
	{ID: goIdentity.MetricIdentifyUnauthenticated, Name: "goidentity_identify_unauthenticated_total", Help: "Identity resolutions rejected as unauthenticated."},
	{ID: goIdentity.MetricIdentifyForbidden, Name: "goidentity_identify_forbidden_total", Help: "Identity resolutions rejected for a disabled account."},
	{ID: goIdentity.MetricTokenPairIssued, Name: "goidentity_token_pair_issued_total", Help: "Issued access/refresh token pairs."},
}
