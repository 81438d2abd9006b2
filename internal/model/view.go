package model

// View identifies the top-level screen a client should render.
type View string

const (
	ViewLoggedOut View = "logged_out"
	ViewRaffle    View = "raffle"
	ViewDashboard View = "dashboard"
	ViewAdmin     View = "admin"
)

// ViewForUser returns the landing view after login, registration or a
// restored session. A nil user is logged out; admins land on the admin view.
func ViewForUser(u *User) View {
	switch {
	case u == nil:
		return ViewLoggedOut
	case u.IsAdmin():
		return ViewAdmin
	default:
		return ViewRaffle
	}
}

// CanNavigate reports whether the user may switch to the target view.
// Raffle and dashboard require an authenticated session, the admin view
// additionally requires the admin role.
func CanNavigate(u *User, target View) bool {
	switch target {
	case ViewLoggedOut:
		return true // logout is always allowed
	case ViewRaffle, ViewDashboard:
		return u != nil
	case ViewAdmin:
		return u != nil && u.IsAdmin()
	default:
		return false
	}
}
