package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioBaseURL = "https://verify.twilio.com/v2"

// TwilioProvider delivers and checks one-time codes through the Twilio
// Verify v2 REST API.
type TwilioProvider struct {
	accountSID string
	authToken  string
	serviceSID string
	baseURL    string
	client     *http.Client
}

func NewTwilioProvider(accountSID, authToken, serviceSID string) *TwilioProvider {
	return &TwilioProvider{
		accountSID: strings.TrimSpace(accountSID),
		authToken:  strings.TrimSpace(authToken),
		serviceSID: strings.TrimSpace(serviceSID),
		baseURL:    twilioBaseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type twilioResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (p *TwilioProvider) SendChallenge(ctx context.Context, phone string) error {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", "sms")

	_, err := p.post(ctx, "/Verifications", form)
	return err
}

func (p *TwilioProvider) CheckChallenge(ctx context.Context, phone, code string) (bool, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	res, err := p.post(ctx, "/VerificationCheck", form)
	if err != nil {
		// Twilio answers 404 when no challenge is pending for the number;
		// for the user that is simply a rejected code.
		if errors.Is(err, errNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(res.Status, "approved"), nil
}

var errNotFound = errors.New("verification not found")

func (p *TwilioProvider) post(ctx context.Context, path string, form url.Values) (twilioResponse, error) {
	endpoint := fmt.Sprintf("%s/Services/%s%s", p.baseURL, p.serviceSID, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return twilioResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.accountSID, p.authToken)

	res, err := p.client.Do(req)
	if err != nil {
		// Timeouts and cancellations surface here; the caller retries by
		// resubmitting, so everything maps to transient.
		return twilioResponse{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	var parsed twilioResponse
	_ = json.Unmarshal(body, &parsed)

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return parsed, nil
	}
	if res.StatusCode == http.StatusNotFound {
		return twilioResponse{}, errNotFound
	}
	return twilioResponse{}, classify(res.StatusCode, parsed)
}

// classify maps a Twilio error response onto the gateway error kinds.
func classify(status int, res twilioResponse) error {
	switch res.Code {
	case 60200, 21211: // invalid parameter / invalid To number
		return fmt.Errorf("%w: twilio %d: %s", ErrInvalidNumber, res.Code, res.Message)
	case 60205, 21614: // sms to landline / not a mobile number
		return fmt.Errorf("%w: twilio %d: %s", ErrUnsupportedChannel, res.Code, res.Message)
	}
	if status == http.StatusBadRequest {
		return fmt.Errorf("%w: twilio %d: %s", ErrInvalidNumber, res.Code, res.Message)
	}
	return fmt.Errorf("%w: twilio status %d code %d: %s", ErrTransient, status, res.Code, res.Message)
}
