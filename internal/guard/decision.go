package guard

// Outcome is the closed set of route-guard results. Every consumer switches
// over these four values; there is no fifth state.
type Outcome string

const (
	Allow             Outcome = "ok"
	RedirectLogin     Outcome = "redirectLogin"
	Blocked           Outcome = "blocked"
	NeedsVerification Outcome = "verify"
)

// Decision is the guard's answer for one route entry: the outcome plus the
// path the client should land on when the outcome is not Allow.
type Decision struct {
	Outcome  Outcome `json:"decision"`
	Redirect string  `json:"redirect,omitempty"`
	Role     string  `json:"role,omitempty"`
}

const (
	loginPath         = "/login"
	blockedPath       = "/blocked"
	verifyPath        = "/verify-mobile"
	userDashboardPath = "/userdashboard"
)
