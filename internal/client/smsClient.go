package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"saree-checkout/internal/config"
	"strings"
)

type SMSClient interface {
	Configured() bool
	Send(ctx context.Context, phone, message string) error
}

type fast2smsClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
}

func NewSMSClient(cfg *config.SMS) SMSClient {
	return &fast2smsClientImpl{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseApiURL: cfg.BaseApiURL,
		apiKey:     cfg.APIKey,
	}
}

func (c *fast2smsClientImpl) Configured() bool {
	return c.apiKey != ""
}

func (c *fast2smsClientImpl) Send(ctx context.Context, phone, message string) error {
	// quick route, no DLT template
	form := url.Values{}
	form.Set("route", "q")
	form.Set("message", message)
	form.Set("numbers", phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseApiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result struct {
		Return bool `json:"return"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("sms error %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.Return {
		return fmt.Errorf("sms not sent: status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}
