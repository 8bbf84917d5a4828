package mailer

import "strings"

// Address is an email address with an optional display name.
type Address struct {
	Name  string
	Email string
}

// NewAddress returns an address without display name.
func NewAddress(email string) Address {
	return Address{Email: email}
}

// Formatted renders "Name <email>", or the bare address without a name.
func (a Address) Formatted() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

func (a Address) String() string { return a.Formatted() }

// Hostname returns the part after the last "@", or "" when there is none.
func (a Address) Hostname() string {
	i := strings.LastIndex(a.Email, "@")
	if i < 0 {
		return ""
	}
	return a.Email[i+1:]
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool { return a.Email == "" }

func joinAddresses(list []Address) string {
	parts := make([]string, len(list))
	for i, a := range list {
		parts[i] = a.Formatted()
	}
	return strings.Join(parts, ", ")
}

// FormatAll formats every address. Empty input yields nil.
func FormatAll(list []Address) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Formatted()
	}
	return out
}
