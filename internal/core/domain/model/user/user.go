// Package user models the registered participant who orders meals by text.
package user

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/errs"
)

// User is read-only to the conversation; registration happens elsewhere.
type User struct {
	id          kernel.UUID
	firstName   string
	lastName    string
	mobilePhone string
}

// NewUser validates the identifier and normalizes the mobile phone.
func NewUser(id kernel.UUID, firstName, lastName, mobilePhone string) (*User, error) {
	phone, errPhone := NormalizePhone(mobilePhone)
	if err := errors.Join(id.Validate(), errPhone); err != nil {
		return nil, err
	}
	return &User{
		id:          id,
		firstName:   strings.TrimSpace(firstName),
		lastName:    strings.TrimSpace(lastName),
		mobilePhone: phone,
	}, nil
}

func (u *User) ID() kernel.UUID     { return u.id }
func (u *User) FirstName() string   { return u.firstName }
func (u *User) LastName() string    { return u.lastName }
func (u *User) MobilePhone() string { return u.mobilePhone }

// NormalizePhone strips everything but digits, and a leading US country code,
// so "+1 (555) 010-2000" and "5550102000" match the same user.
func NormalizePhone(phone string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) < 7 {
		return "", errs.NewValueIsInvalidErrorWithCause("mobile phone", fmt.Errorf("%q has fewer than 7 digits", phone))
	}
	return digits, nil
}
