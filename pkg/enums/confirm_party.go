package enums

import "fmt"

// ConfirmParty identifies which side of a bilateral confirmation acted.
type ConfirmParty string

const (
	ConfirmPartyCustomer  ConfirmParty = "customer"
	ConfirmPartyInstaller ConfirmParty = "installer"
)

// IsValid reports whether the value is a known ConfirmParty.
func (p ConfirmParty) IsValid() bool {
	return p == ConfirmPartyCustomer || p == ConfirmPartyInstaller
}

// ParseConfirmParty converts raw input into a ConfirmParty.
func ParseConfirmParty(value string) (ConfirmParty, error) {
	switch ConfirmParty(value) {
	case ConfirmPartyCustomer:
		return ConfirmPartyCustomer, nil
	case ConfirmPartyInstaller:
		return ConfirmPartyInstaller, nil
	}
	return "", fmt.Errorf("invalid confirming party %q", value)
}
