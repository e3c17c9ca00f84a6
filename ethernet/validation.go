package ethernet

import (
	"encoding/binary"
	"errors"
)

// Validator accumulates validation errors across one or more checks before a
// caller decides whether to reject the data being validated. AddError
// appends a failure, HasError reports whether any have been recorded, and
// Err joins them into a single error value (or nil, if none were added).
type Validator struct {
	accum []error
}

// AddError records a validation failure. err must not be nil.
func (v *Validator) AddError(err error) {
	if err == nil {
		panic("ethernet: AddError called with nil error")
	}
	v.accum = append(v.accum, err)
}

// HasError reports whether any error has been added.
func (v *Validator) HasError() bool { return len(v.accum) != 0 }

// Err returns the accumulated errors joined into one, or nil if none were
// added.
func (v *Validator) Err() error {
	switch len(v.accum) {
	case 0:
		return nil
	case 1:
		return v.accum[0]
	default:
		return errors.Join(v.accum...)
	}
}

// ValidateSize checks that buf is long enough to hold a well-formed
// Ethernet header — 14 bytes, or 18 if the ethertype field at offset 12
// reads as the 802.1Q TPID — adding ErrShortFrame to v when it is not.
func ValidateSize(v *Validator, buf []byte) {
	if len(buf) < sizeHeaderNoVLAN {
		v.AddError(ErrShortFrame)
		return
	}
	if Type(binary.BigEndian.Uint16(buf[12:14])) == TypeVLAN && len(buf) < sizeHeaderVLAN {
		v.AddError(ErrShortFrame)
	}
}
