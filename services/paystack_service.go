package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cardealer/cardealer_backend/models"
)

// PaystackService handles interactions with the Paystack API
type PaystackService struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewPaystackService creates a new Paystack service instance
func NewPaystackService() *PaystackService {
	baseURL := os.Getenv("PAYSTACK_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}

	secretKey := os.Getenv("PAYSTACK_SECRET_KEY")
	if secretKey == "" {
		log.Printf("WARNING: PAYSTACK_SECRET_KEY is not set")
		log.Printf("Please set it for the Paystack payment service to work")
	}

	return &PaystackService{
		baseURL:   baseURL,
		secretKey: secretKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest performs an HTTP request to the Paystack API
func (s *PaystackService) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) (*models.PaystackResponse, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("missing Paystack credentials. Please set the PAYSTACK_SECRET_KEY environment variable")
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if os.Getenv("PAYSTACK_DEBUG") == "true" {
		log.Printf("Paystack API %s %s response: %s", method, endpoint, string(respBody))
	}

	var psResp models.PaystackResponse
	if err := json.Unmarshal(respBody, &psResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !psResp.Status {
		msg := psResp.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return &psResp, fmt.Errorf("paystack API error: %s", msg)
	}

	return &psResp, nil
}

// InitializeTransaction creates a payment and returns the authorization URL
// and the gateway-issued reference. Amount is in minor units.
func (s *PaystackService) InitializeTransaction(ctx context.Context, email string, amountMinor int64, metadata models.TransactionMetadata) (*models.PaystackInitData, error) {
	payload := models.PaystackRequest{
		Email:    email,
		Amount:   amountMinor,
		Metadata: metadata,
	}

	resp, err := s.makeRequest(ctx, http.MethodPost, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	var data models.PaystackInitData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse initialize response: %w", err)
	}
	if data.Reference == "" || data.AuthorizationURL == "" {
		return nil, fmt.Errorf("failed to parse authorization URL from response")
	}

	return &data, nil
}

// VerifyTransaction returns the status of a payment transaction
func (s *PaystackService) VerifyTransaction(ctx context.Context, reference string) (*models.PaystackVerifyData, error) {
	resp, err := s.makeRequest(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}

	var data models.PaystackVerifyData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse verify response: %w", err)
	}

	return &data, nil
}
