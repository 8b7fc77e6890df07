package permission

import "net/http"

// Decision is the outcome of a permission check.
type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Principal identifies the caller of a request. A nil *Principal is anonymous.
type Principal struct {
	UserID string
	Role   Role
}

func (p *Principal) authenticated() bool {
	return p != nil && p.UserID != ""
}

// IsSafeMethod reports whether method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Catalog guards categories, genres and titles: anyone reads, admins write.
func Catalog(p *Principal, method string) Decision {
	if IsSafeMethod(method) {
		return Allow
	}
	if !p.authenticated() {
		return Unauthenticated
	}
	if p.Role.IsAdmin() {
		return Allow
	}
	return Forbidden
}

// AuthoredCollection guards review and comment collections: anyone reads,
// any authenticated user creates.
func AuthoredCollection(p *Principal, method string) Decision {
	if IsSafeMethod(method) {
		return Allow
	}
	if !p.authenticated() {
		return Unauthenticated
	}
	return Allow
}

// AuthoredObject guards a single review or comment. Writes are open to the
// author, moderators and admins.
func AuthoredObject(p *Principal, method, authorID string) Decision {
	if IsSafeMethod(method) {
		return Allow
	}
	if !p.authenticated() {
		return Unauthenticated
	}
	if p.UserID == authorID || p.Role.AtLeast(RoleModerator) {
		return Allow
	}
	return Forbidden
}

// UserAdmin guards the user management collection.
func UserAdmin(p *Principal, _ string) Decision {
	if !p.authenticated() {
		return Unauthenticated
	}
	if p.Role.IsAdmin() {
		return Allow
	}
	return Forbidden
}

// Self guards the caller's own profile.
func Self(p *Principal, _ string) Decision {
	if !p.authenticated() {
		return Unauthenticated
	}
	return Allow
}
