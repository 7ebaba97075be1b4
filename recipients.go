package maileroo

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
)

// Recipients is one or more addresses for a to, cc, bcc or reply_to field.
// A value built with One serializes as a single object; a value built with
// Many serializes as an array, even when it holds a single address. The
// zero value means the field is absent.
type Recipients struct {
	addrs []EmailAddress
	many  bool
}

// One returns recipients holding exactly one address, sent as an object.
func One(addr EmailAddress) Recipients {
	return Recipients{addrs: []EmailAddress{addr}}
}

// Many returns recipients sent as an array of address objects.
func Many(addrs ...EmailAddress) Recipients {
	return Recipients{addrs: slices.Clone(addrs), many: true}
}

// IsZero reports whether the field is absent.
func (r Recipients) IsZero() bool {
	return !r.many && len(r.addrs) == 0
}

// Len returns the number of addresses.
func (r Recipients) Len() int { return len(r.addrs) }

// Addresses returns a copy of the addresses.
func (r Recipients) Addresses() []EmailAddress {
	return slices.Clone(r.addrs)
}

// MarshalJSON encodes a single object for One and an array for Many.
func (r Recipients) MarshalJSON() ([]byte, error) {
	if !r.many && len(r.addrs) == 1 {
		return json.Marshal(r.addrs[0])
	}
	if r.addrs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.addrs)
}

// check validates the recipients for field. An absent value is an error
// only when required is set.
func (r Recipients) check(field string, required bool) error {
	if r.IsZero() {
		if required {
			return apierrors.Invalid(field, "at least one address is required")
		}
		return nil
	}
	if len(r.addrs) == 0 {
		return apierrors.Invalid(field, "address list must not be empty")
	}
	for i, addr := range r.addrs {
		if addr.IsZero() {
			if r.many {
				return apierrors.Invalid(fmt.Sprintf("%s[%d]", field, i), "address is not set")
			}
			return apierrors.Invalid(field, "address is not set")
		}
	}
	return nil
}
