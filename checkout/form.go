package checkout

import (
	"regexp"
	"strings"
)

// Payment method tags
const (
	PaymentCard = "card"
	PaymentCash = "cash"
)

// Form holds the checkout fields. Card fields are only validated when the
// payment method is card.
type Form struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string

	PaymentMethod string
	CardNumber    string
	ExpiryDate    string
	CVV           string
	CardName      string
}

var (
	emailPattern  = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern  = regexp.MustCompile(`^\d{10}$`)
	postalPattern = regexp.MustCompile(`^\d{6}$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3}$`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

func stripSpaces(s string) string {
	return spacePattern.ReplaceAllString(s, "")
}

// Validate is a pure function from the current field values to a field ->
// message map. An empty map means the form is valid.
func Validate(f Form) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Email is invalid"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(stripSpaces(f.Phone)) {
		errs["phone"] = "Phone number must be 10 digits"
	}

	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(f.PostalCode) == "" {
		errs["postalCode"] = "Postal code is required"
	} else if !postalPattern.MatchString(f.PostalCode) {
		errs["postalCode"] = "Postal code must be 6 digits"
	}

	if f.PaymentMethod == PaymentCard {
		if strings.TrimSpace(f.CardNumber) == "" {
			errs["cardNumber"] = "Card number is required"
		} else if !cardPattern.MatchString(stripSpaces(f.CardNumber)) {
			errs["cardNumber"] = "Card number must be 16 digits"
		}
		if strings.TrimSpace(f.ExpiryDate) == "" {
			errs["expiryDate"] = "Expiry date is required"
		} else if !expiryPattern.MatchString(f.ExpiryDate) {
			errs["expiryDate"] = "Expiry date must be MM/YY format"
		}
		if strings.TrimSpace(f.CVV) == "" {
			errs["cvv"] = "CVV is required"
		} else if !cvvPattern.MatchString(f.CVV) {
			errs["cvv"] = "CVV must be 3 digits"
		}
		if strings.TrimSpace(f.CardName) == "" {
			errs["cardName"] = "Cardholder name is required"
		}
	}

	return errs
}
