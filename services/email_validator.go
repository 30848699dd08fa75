package services

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EmailValidationResult reports whether an address is acceptable and, when it
// is not, a machine-readable reason: "regex" (syntax), "disposable" (known
// throwaway domain) or "mx" (domain has no mail exchanger).
type EmailValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// disposableDomains are throwaway mail providers whose addresses are rejected
// even when syntactically valid and deliverable.
var disposableDomains = map[string]struct{}{
	"10minutemail.com":  {},
	"dispostable.com":   {},
	"fakeinbox.com":     {},
	"getnada.com":       {},
	"guerrillamail.com": {},
	"mailinator.com":    {},
	"maildrop.cc":       {},
	"mintemail.com":     {},
	"sharklasers.com":   {},
	"spamgourmet.com":   {},
	"temp-mail.org":     {},
	"tempmail.com":      {},
	"throwawaymail.com": {},
	"trashmail.com":     {},
	"yopmail.com":       {},
}

// EmailValidator checks feedback email addresses for syntax, disposable
// domains and MX deliverability.
type EmailValidator struct {
	checkMX   bool
	lookupMX  func(ctx context.Context, domain string) ([]*net.MX, error)
	mxTimeout time.Duration
}

// NewEmailValidator creates a validator with MX lookups enabled
func NewEmailValidator() *EmailValidator {
	return NewEmailValidatorWithOptions(true)
}

// NewEmailValidatorWithOptions creates a validator with MX lookups toggled.
// MX checks need outbound DNS, so they are switched off in tests and
// air-gapped deployments.
func NewEmailValidatorWithOptions(checkMX bool) *EmailValidator {
	return &EmailValidator{
		checkMX: checkMX,
		lookupMX: func(ctx context.Context, domain string) ([]*net.MX, error) {
			return net.DefaultResolver.LookupMX(ctx, domain)
		},
		mxTimeout: 5 * time.Second,
	}
}

// Validate runs the syntax, disposable and MX checks in order and stops at
// the first failure
func (v *EmailValidator) Validate(ctx context.Context, email string) EmailValidationResult {
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return EmailValidationResult{Valid: false, Reason: "regex"}
	}

	at := strings.LastIndex(email, "@")
	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") {
		return EmailValidationResult{Valid: false, Reason: "regex"}
	}

	if _, disposable := disposableDomains[domain]; disposable {
		return EmailValidationResult{Valid: false, Reason: "disposable"}
	}

	if v.checkMX {
		mxCtx, cancel := context.WithTimeout(ctx, v.mxTimeout)
		defer cancel()

		records, err := v.lookupMX(mxCtx, domain)
		if err != nil || len(records) == 0 {
			logrus.WithFields(logrus.Fields{
				"domain": domain,
			}).WithError(err).Debug("Email domain failed MX lookup")
			return EmailValidationResult{Valid: false, Reason: "mx"}
		}
	}

	return EmailValidationResult{Valid: true}
}
