package maileroo

import (
	"encoding/json"
	"net/mail"

	"github.com/maileroo/maileroo-go-sdk/internal/validate"
)

// EmailAddress is a validated mailbox address with an optional display name.
// The zero value is not a valid address; use NewEmailAddress or
// NewEmailAddressWithName.
type EmailAddress struct {
	address     string
	displayName string
}

// NewEmailAddress returns an address without a display name. It fails with
// ErrInvalidArgument when address is blank or not of the form
// local-part@domain.
func NewEmailAddress(address string) (EmailAddress, error) {
	if err := validate.Address("address", address); err != nil {
		return EmailAddress{}, err
	}
	return EmailAddress{address: address}, nil
}

// NewEmailAddressWithName returns an address with a display name. The
// display name must not be blank.
func NewEmailAddressWithName(address, displayName string) (EmailAddress, error) {
	if err := validate.Address("address", address); err != nil {
		return EmailAddress{}, err
	}
	if err := validate.DisplayName("display_name", displayName); err != nil {
		return EmailAddress{}, err
	}
	return EmailAddress{address: address, displayName: displayName}, nil
}

// Address returns the bare local-part@domain address.
func (a EmailAddress) Address() string { return a.address }

// DisplayName returns the display name, or "" when none was given.
func (a EmailAddress) DisplayName() string { return a.displayName }

// IsZero reports whether a was never constructed.
func (a EmailAddress) IsZero() bool { return a.address == "" }

// String renders the address in RFC 5322 form, e.g. "Jane <jane@example.com>".
func (a EmailAddress) String() string {
	if a.IsZero() {
		return ""
	}
	return (&mail.Address{Name: a.displayName, Address: a.address}).String()
}

type addressJSON struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
}

// MarshalJSON encodes the address as {"address": ..., "display_name": ...},
// omitting display_name when absent.
func (a EmailAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{Address: a.address, DisplayName: a.displayName})
}
