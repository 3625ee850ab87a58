package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// turnstileVerifyURL is the Cloudflare siteverify endpoint, replaced in tests
var turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var turnstileClient = &http.Client{Timeout: 10 * time.Second}

type TurnstileResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// VerifyTurnstileToken verifies the token with Cloudflare
func VerifyTurnstileToken(ctx context.Context, token, secretKey, ip string) (bool, error) {
	if token == "" || secretKey == "" {
		return false, fmt.Errorf("missing token or secret key")
	}

	form := url.Values{
		"secret":   {secretKey},
		"response": {token},
		"remoteip": {ip},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, turnstileVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := turnstileClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	var result TurnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode turnstile response: %w", err)
	}

	// If success is false, return an error with the error codes
	if !result.Success {
		return false, fmt.Errorf("turnstile verification failed, error codes: %v", result.ErrorCodes)
	}

	return true, nil
}
