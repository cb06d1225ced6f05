package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const DefaultAPIURL = "https://api.monobank.ua"

// Client talks to the monobank personal API on behalf of a user. Every call
// authenticates with the user's own token via the X-Token header.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient() *Client {
	baseURL := os.Getenv("MONOBANK_API_URL")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("BANK_HTTP_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}

	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// ClientInfo is the subset of the client-info response this service reads.
// Monobank returns the full name as a single "Last First" string.
type ClientInfo struct {
	Name string `json:"name"`
}

// StatementItem is one raw movement from the statement endpoint. Amounts are
// integer minor currency units, Time is epoch seconds.
type StatementItem struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	Balance        int64  `json:"balance"`
	CashbackAmount int64  `json:"cashbackAmount"`
	MCC            int    `json:"mcc"`
	Time           int64  `json:"time"`
	Description    string `json:"description"`
}

func (c *Client) doRequest(method, endpoint, bankToken string, body interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Token", bankToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// SetupWebhook registers webhookURL with monobank. The raw response body and
// status are passed through so the caller can map a non-200 to "invalid
// token" instead of treating it as a server fault.
func (c *Client) SetupWebhook(bankToken, webhookURL string) (json.RawMessage, int, error) {
	payload := map[string]string{"webHookUrl": webhookURL}
	body, status, err := c.doRequest("POST", "/personal/webhook", bankToken, payload)
	if err != nil {
		return nil, status, err
	}
	return json.RawMessage(body), status, nil
}

// FetchClientInfo returns the account holder's profile fields.
func (c *Client) FetchClientInfo(bankToken string) (*ClientInfo, int, error) {
	body, status, err := c.doRequest("GET", "/personal/client-info", bankToken, nil)
	if err != nil {
		return nil, status, err
	}
	if status != http.StatusOK {
		return nil, status, nil
	}

	var info ClientInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, status, fmt.Errorf("failed to decode client info: %w", err)
	}
	return &info, status, nil
}

// FetchStatement returns the account's movements from the given instant up
// to now.
func (c *Client) FetchStatement(bankToken string, from time.Time) ([]StatementItem, int, error) {
	endpoint := fmt.Sprintf("/personal/statement/0/%d", from.Unix())
	body, status, err := c.doRequest("GET", endpoint, bankToken, nil)
	if err != nil {
		return nil, status, err
	}
	if status != http.StatusOK {
		return nil, status, nil
	}

	var items []StatementItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, status, fmt.Errorf("failed to decode statement: %w", err)
	}
	return items, status, nil
}
