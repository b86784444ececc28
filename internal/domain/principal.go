package domain

import "strings"

// Principal type tags as reported by the BI tool's REST API.
const (
	PrincipalTypeUser             = "User"
	PrincipalTypeApp              = "App"
	PrincipalTypeGroup            = "Group"
	PrincipalTypeServicePrincipal = "ServicePrincipal"
)

// Principal is an external directory record supplied by the BI tool: a human
// user, app, service principal, or group. Instances are transient, one per
// record processed.
type Principal struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	EmailAddress  string `json:"emailAddress"`
	GraphID       string `json:"graphId"`       // stable directory identifier, may be empty
	PrincipalType string `json:"principalType"` // User, App, ServicePrincipal, Group
	AccessRight   string `json:"accessRight"`   // e.g. Owner, Admin, Viewer; may be empty
}

// IsHuman returns true when the principal is a human user rather than an app,
// service principal, or group.
func (p *Principal) IsHuman() bool {
	return strings.EqualFold(p.PrincipalType, PrincipalTypeUser)
}

// IdentityName derives the corp-user name for this principal under the given
// policy. Email-based naming only applies when the principal actually has an
// email address; otherwise the stable "users.<id>" form is used.
func (p *Principal) IdentityName(policy *OwnershipPolicy) string {
	if policy.UseEmailAsIdentifier && p.EmailAddress != "" {
		name := p.EmailAddress
		if policy.StripEmailDomain {
			if at := strings.Index(name, "@"); at >= 0 {
				name = name[:at]
			}
		}
		return name
	}
	return "users." + p.ID
}
