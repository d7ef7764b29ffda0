package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"sportiva/internal/domain/account"
)

// Decision is the outcome of an access check.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirect
	DecisionDeny
)

// PathRule maps a path prefix to the roles that may enter it. A request
// passes when the session holds ANY of the listed roles.
type PathRule struct {
	Prefix string
	Roles  []string
}

// DefaultPathRules is the static access table. Longer prefixes win; paths
// not listed (login, signup, static assets) are public.
var DefaultPathRules = []PathRule{
	{Prefix: "/trainer", Roles: []string{account.RoleTrainer}},
	{Prefix: "/manage", Roles: []string{account.RoleGymManager}},
	{Prefix: "/gyms", Roles: []string{account.RoleMember}},
	{Prefix: "/dashboard", Roles: []string{account.RoleMember}},
	{Prefix: "/roles", Roles: []string{account.RoleMember}},
	{Prefix: "/profile", Roles: []string{account.RoleMember}},
	{Prefix: "/api", Roles: []string{account.RoleMember}},
}

// CheckResult carries the decision plus what to do with it.
type CheckResult struct {
	Decision    Decision
	RedirectURL string // set for DecisionRedirect
	MissingRole string // set for DecisionDeny; names one role that would grant access
}

// CheckAccess evaluates the rules for a path against a session. Paths with
// no matching rule are public; the table is the complete list of protected
// areas.
// PRE: rules are sorted or unsorted; the longest matching prefix applies
// POST: DecisionAllow iff no rule matches or the session holds any listed role
func CheckAccess(rules []PathRule, path string, session Session, authenticated bool) CheckResult {
	rule, matched := matchRule(rules, path)
	if !matched {
		return CheckResult{Decision: DecisionAllow}
	}

	if !authenticated {
		return CheckResult{Decision: DecisionRedirect, RedirectURL: loginURL(path)}
	}

	for _, role := range rule.Roles {
		if session.HoldsRole(role) {
			return CheckResult{Decision: DecisionAllow}
		}
	}
	return CheckResult{Decision: DecisionDeny, MissingRole: rule.Roles[0]}
}

// Guard returns middleware enforcing the path rules. Unauthenticated
// requests are sent to the login page with the original path preserved;
// authenticated requests missing every required role get a 403 that names
// a role which would grant access.
func Guard(rules []PathRule) func(http.Handler) http.Handler {
	// Longest prefix first so /manage wins over /.
	sorted := make([]PathRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			result := CheckAccess(sorted, r.URL.Path, session, ok)

			switch result.Decision {
			case DecisionAllow:
				next.ServeHTTP(w, r)
			case DecisionRedirect:
				http.Redirect(w, r, result.RedirectURL, http.StatusSeeOther)
			case DecisionDeny:
				slog.Info("auth_event", "event", "access_denied", "account_id", session.AccountID, "path", r.URL.Path, "missing_role", result.MissingRole)
				writeDenied(w, result.MissingRole)
			}
		})
	}
}

// writeDenied names the missing role and links back to an allowed page,
// so a denial is never a dead end.
func writeDenied(w http.ResponseWriter, missingRole string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprintf(w, `<h1>Access denied</h1>
<p>Forbidden: requires the %s role.</p>
<p><a href="/dashboard">Back to your dashboard</a></p>
`, missingRole)
}

func matchRule(rules []PathRule, path string) (PathRule, bool) {
	for _, rule := range rules {
		if path == rule.Prefix || strings.HasPrefix(path, rule.Prefix+"/") {
			return rule, true
		}
	}
	return PathRule{}, false
}

func loginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}
