package identity

// Identity is an authenticated visitor as reported by Firebase Auth, plus
// the derived privileged flag. The flag is never stored; it is recomputed
// from the email on every derivation so there is exactly one definition of
// "admin" in the system.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Admin       bool   `json:"isAdmin"`
}

// Derive builds an Identity from provider claims. The admin flag is an
// exact, case-sensitive comparison of the account email against the single
// configured admin address. An empty adminEmail grants nobody.
func Derive(uid, email, displayName, photoURL, adminEmail string) *Identity {
	return &Identity{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Admin:       adminEmail != "" && email == adminEmail,
	}
}
