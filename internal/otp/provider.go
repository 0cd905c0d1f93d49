package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mvps-print/printshop-backend/config"
)

// Provider is the external SMS/OTP delivery service. The code itself never
// touches this process: only the provider-issued session id does.
type Provider interface {
	Send(ctx context.Context, mobile string) (sessionID string, err error)
	Verify(ctx context.Context, sessionID, otp string) (bool, error)
}

// TwoFactorClient talks to a 2Factor-style HTTP API:
//
//	GET {base}/{key}/SMS/{mobile}/AUTOGEN        -> {"Status":"Success","Details":"<session>"}
//	GET {base}/{key}/SMS/VERIFY/{session}/{otp}  -> {"Status":"Success","Details":"OTP Matched"}
type TwoFactorClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewTwoFactorClient(cfg *config.OTPConfig) *TwoFactorClient {
	return &TwoFactorClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type providerResponse struct {
	Status  string `json:"Status"`
	Details string `json:"Details"`
}

func (c *TwoFactorClient) call(ctx context.Context, url string) (*providerResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("otp provider: %w", err)
	}
	defer resp.Body.Close()

	var out providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("otp provider: decode response: %w", err)
	}
	return &out, nil
}

func (c *TwoFactorClient) Send(ctx context.Context, mobile string) (string, error) {
	url := fmt.Sprintf("%s/%s/SMS/%s/AUTOGEN", c.baseURL, c.apiKey, mobile)
	out, err := c.call(ctx, url)
	if err != nil {
		return "", err
	}
	if out.Status != "Success" {
		return "", fmt.Errorf("otp provider: send failed: %s", out.Details)
	}
	return out.Details, nil
}

func (c *TwoFactorClient) Verify(ctx context.Context, sessionID, otp string) (bool, error) {
	url := fmt.Sprintf("%s/%s/SMS/VERIFY/%s/%s", c.baseURL, c.apiKey, sessionID, otp)
	out, err := c.call(ctx, url)
	if err != nil {
		return false, err
	}
	return out.Status == "Success" && out.Details == "OTP Matched", nil
}
