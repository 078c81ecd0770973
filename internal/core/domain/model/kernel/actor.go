package kernel

import (
	"fmt"
	"strings"

	"eatify/internal/pkg/errs"
)

// Role is the kind of actor behind a trigger, as asserted by the authentication collaborator.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDelivery   Role = "delivery"
	RoleSystem     Role = "system"
)

func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleCustomer, RoleRestaurant, RoleDelivery, RoleSystem:
		return role, nil
	case "":
		return "", errs.NewValueIsRequiredError("role")
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", raw))
	}
}

// Actor is a verified identity: role plus email. The system actor has no email.
type Actor struct {
	role  Role
	email string
}

func NewActor(role Role, email string) (Actor, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if role != RoleSystem {
		if err := validateEmail(email); err != nil {
			return Actor{}, err
		}
	}

	return Actor{role: role, email: email}, nil
}

// SystemActor is used by scheduled jobs.
func SystemActor() Actor {
	return Actor{role: RoleSystem}
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Email() string {
	return a.email
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

// Owns reports whether the actor's email identifies party.
func (a Actor) Owns(party Party) bool {
	return a.email != "" && strings.EqualFold(a.email, party.Email())
}

func (a Actor) String() string {
	if a.email == "" {
		return string(a.role)
	}
	return string(a.role) + ":" + a.email
}

func validateEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	return nil
}
