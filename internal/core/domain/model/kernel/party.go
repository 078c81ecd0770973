package kernel

import (
	"errors"
	"strings"

	"eatify/internal/pkg/errs"
)

// Party is the contact card of a customer, restaurant or delivery partner.
// Name and email are required; phone and address depend on the role.
type Party struct {
	name    string
	email   string
	phone   string
	address string
}

func NewParty(name, email, phone, address string) (Party, error) {
	p := Party{
		name:    strings.TrimSpace(name),
		email:   strings.ToLower(strings.TrimSpace(email)),
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
	}

	var nameErr error
	if p.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(nameErr, validateEmail(p.email)); err != nil {
		return Party{}, err
	}
	return p, nil
}

func (p Party) Name() string    { return p.name }
func (p Party) Email() string   { return p.email }
func (p Party) Phone() string   { return p.phone }
func (p Party) Address() string { return p.address }

func (p Party) IsZero() bool {
	return p == Party{}
}

// RequirePhone fails when the party cannot be reached by phone.
func (p Party) RequirePhone(param string) error {
	if p.phone == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
