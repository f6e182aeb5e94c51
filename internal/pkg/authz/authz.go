// Package authz decides whether a viewer may mutate a record they did not
// necessarily create. Checks run in a fixed order with early exit:
// authentication first, then ownership. Resolving a record (including the
// comment id + post id pair lookup) is the caller's job and must happen
// between the two, so a missing record reads as not-found rather than
// leaking an ownership verdict.
package authz

// Viewer is the identity attached to a request, possibly anonymous.
type Viewer struct {
	UserID        uint
	Username      string
	Authenticated bool
}

// Owned is any record with a single owning user.
type Owned interface {
	OwnerID() uint
}

type Decision int

const (
	// Allowed: authenticated viewer owns the record.
	Allowed Decision = iota
	// DeniedUnauthenticated: no viewer identity; send to sign-in.
	DeniedUnauthenticated
	// DeniedNotOwner: authenticated but not the record's author.
	DeniedNotOwner
)

// AuthorizeMutation runs the ordered ownership pipeline for a resolved
// record. It never inspects the record beyond its owner, so the caller must
// have 404'd unresolvable lookups already.
func AuthorizeMutation(v Viewer, record Owned) Decision {
	if !v.Authenticated {
		return DeniedUnauthenticated
	}
	if record.OwnerID() != v.UserID {
		return DeniedNotOwner
	}
	return Allowed
}
