package domain

// Access rules for fiches. Every handler and service goes through these
// functions; nothing else compares roles.

// CanView reports whether user may read fiche.
func CanView(user User, fiche Fiche) bool {
	return user.IsAdmin() || fiche.AssignedTo(user.ID)
}

// CanReassign reports whether user may change a fiche's advisor.
func CanReassign(user User) bool {
	return user.IsAdmin()
}

// CanDelete reports whether user may delete fiches.
func CanDelete(user User) bool {
	return user.IsAdmin()
}

// FilterVisible returns the fiches user may read, in their original order.
func FilterVisible(user User, fiches []Fiche) []Fiche {
	if user.IsAdmin() {
		return fiches
	}
	out := make([]Fiche, 0, len(fiches))
	for _, f := range fiches {
		if CanView(user, f) {
			out = append(out, f)
		}
	}
	return out
}
