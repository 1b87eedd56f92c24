// Package verify abstracts one-time-code phone verification behind a
// pluggable gateway: a live Twilio Verify provider, or a deterministic
// bypass for environments without credentials.
package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Delivery failures the flow layer must distinguish; anything the provider
// reports that does not classify cleanly is treated as transient.
var (
	ErrInvalidNumber      = errors.New("invalid phone number")
	ErrUnsupportedChannel = errors.New("sms not supported for this number")
	ErrTransient          = errors.New("verification service unavailable")
)

// Gateway sends and checks one-time verification codes.
type Gateway interface {
	// SendChallenge triggers delivery of a one-time code to phone.
	SendChallenge(ctx context.Context, phone string) error
	// CheckChallenge validates a submitted code. approved=false with a
	// nil error means the code was rejected.
	CheckChallenge(ctx context.Context, phone, code string) (approved bool, err error)
}

// Config controls gateway construction.
type Config struct {
	Mode             string // auto | twilio | bypass
	AccountSID       string
	AuthToken        string
	VerifyServiceSID string
	BypassCode       string
}

// New selects a gateway implementation. In auto mode the Twilio provider
// is used when credentials are present, otherwise the bypass.
func New(cfg Config) (Gateway, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	hasCreds := strings.TrimSpace(cfg.AccountSID) != "" &&
		strings.TrimSpace(cfg.AuthToken) != "" &&
		strings.TrimSpace(cfg.VerifyServiceSID) != ""

	switch mode {
	case "twilio":
		if !hasCreds {
			return nil, errors.New("twilio verify credentials are required for twilio mode")
		}
		return NewTwilioProvider(cfg.AccountSID, cfg.AuthToken, cfg.VerifyServiceSID), nil
	case "bypass":
		return NewBypassProvider(cfg.BypassCode), nil
	case "auto":
		if hasCreds {
			return NewTwilioProvider(cfg.AccountSID, cfg.AuthToken, cfg.VerifyServiceSID), nil
		}
		return NewBypassProvider(cfg.BypassCode), nil
	default:
		return nil, fmt.Errorf("unsupported verify provider mode %q (expected auto|twilio|bypass)", cfg.Mode)
	}
}
