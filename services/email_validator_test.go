package services

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidatorRejectsBadSyntax(t *testing.T) {
	validator := NewEmailValidatorWithOptions(false)

	for _, email := range []string{"", "plainaddress", "missing@domain", "a b@example.com", "@example.com"} {
		result := validator.Validate(context.Background(), email)
		assert.False(t, result.Valid, "expected %q to be rejected", email)
		assert.Equal(t, "regex", result.Reason)
	}
}

func TestEmailValidatorRejectsDisposableDomain(t *testing.T) {
	validator := NewEmailValidatorWithOptions(false)

	// Syntactically valid but a known throwaway provider.
	result := validator.Validate(context.Background(), "someone@mailinator.com")
	assert.False(t, result.Valid)
	assert.Equal(t, "disposable", result.Reason)
}

func TestEmailValidatorAcceptsValidAddress(t *testing.T) {
	validator := NewEmailValidatorWithOptions(false)

	result := validator.Validate(context.Background(), "user@example.com")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
}

func TestEmailValidatorRejectsMissingMX(t *testing.T) {
	validator := NewEmailValidatorWithOptions(true)
	validator.lookupMX = func(ctx context.Context, domain string) ([]*net.MX, error) {
		return nil, errors.New("no such host")
	}

	result := validator.Validate(context.Background(), "user@example.com")
	assert.False(t, result.Valid)
	assert.Equal(t, "mx", result.Reason)
}

func TestEmailValidatorAcceptsWithMXRecords(t *testing.T) {
	validator := NewEmailValidatorWithOptions(true)
	validator.lookupMX = func(ctx context.Context, domain string) ([]*net.MX, error) {
		return []*net.MX{{Host: "mx.example.com", Pref: 10}}, nil
	}

	result := validator.Validate(context.Background(), "user@example.com")
	assert.True(t, result.Valid)
}

func TestEmailValidatorDisposableBeatsMX(t *testing.T) {
	validator := NewEmailValidatorWithOptions(true)
	validator.lookupMX = func(ctx context.Context, domain string) ([]*net.MX, error) {
		t.Fatal("MX lookup must not run for disposable domains")
		return nil, nil
	}

	result := validator.Validate(context.Background(), "someone@yopmail.com")
	assert.False(t, result.Valid)
	assert.Equal(t, "disposable", result.Reason)
}
