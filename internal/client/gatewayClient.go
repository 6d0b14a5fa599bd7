package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"saree-checkout/internal/config"
	"saree-checkout/internal/signature"
	"strconv"
)

// GatewayClient talks to the hash-callback payment gateway. Every request
// carries the api key and a salted hash over all other fields.
type GatewayClient interface {
	Configured() bool
	// CreatePaymentRequest registers a payment and returns the URL the
	// buyer must be sent to.
	CreatePaymentRequest(ctx context.Context, fields map[string]string) (string, error)
	// PaymentStatus asks the gateway, server to server, how a payment ended.
	PaymentStatus(ctx context.Context, orderID string) (*GatewayStatus, error)
}

type gatewayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
	salt       string
}

// GatewayStatus is the decoded payment status response.
type GatewayStatus struct {
	ResponseCode  string
	Status        string
	PaymentStatus string
	TransactionID string
	Raw           json.RawMessage
}

// Succeeded applies the gateway's success rule: any one of the three
// indicators is enough.
func (s *GatewayStatus) Succeeded() bool {
	return s.ResponseCode == "200" ||
		s.Status == "success" ||
		s.PaymentStatus == "success"
}

func NewGatewayClient(cfg *config.Gateway) GatewayClient {
	return &gatewayClientImpl{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseApiURL: cfg.BaseApiURL,
		apiKey:     cfg.APIKey,
		salt:       cfg.Salt,
	}
}

func (c *gatewayClientImpl) Configured() bool {
	return c.baseApiURL != "" && c.apiKey != "" && c.salt != ""
}

func (c *gatewayClientImpl) sign(fields map[string]string) map[string]string {
	payload := make(map[string]string, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}
	payload["api_key"] = c.apiKey
	payload["hash"] = signature.SaltedHashOf(payload, c.salt)
	return payload
}

func (c *gatewayClientImpl) post(ctx context.Context, path string, fields map[string]string) (*http.Response, error) {
	body, err := json.Marshal(c.sign(fields))
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseApiURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(b))
	}

	return resp, nil
}

func (c *gatewayClientImpl) CreatePaymentRequest(ctx context.Context, fields map[string]string) (string, error) {
	resp, err := c.post(ctx, "/v2/paymentrequest", fields)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// the gateway usually answers with a redirect to its hosted payment page
	requestURL := c.baseApiURL + "/v2/paymentrequest"
	if final := resp.Request.URL.String(); final != requestURL {
		return final, nil
	}

	var result struct {
		RedirectURL string `json:"redirect_url"`
		URL         string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}

	if result.RedirectURL != "" {
		return result.RedirectURL, nil
	}
	if result.URL != "" {
		return result.URL, nil
	}
	return "", fmt.Errorf("gateway response carries no redirect url")
}

func (c *gatewayClientImpl) PaymentStatus(ctx context.Context, orderID string) (*GatewayStatus, error) {
	resp, err := c.post(ctx, "/v2/paymentstatus", map[string]string{
		"order_id": orderID,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	var data map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	return &GatewayStatus{
		ResponseCode:  stringValue(data["response_code"]),
		Status:        stringValue(data["status"]),
		PaymentStatus: stringValue(data["payment_status"]),
		TransactionID: stringValue(data["transaction_id"]),
		Raw:           json.RawMessage(raw),
	}, nil
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
