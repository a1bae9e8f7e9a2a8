package models

import "encoding/json"

// PaystackRequest represents the initialize request body for the Paystack API.
// Amount is in minor units (kobo).
type PaystackRequest struct {
	Email    string              `json:"email"`
	Amount   int64               `json:"amount"`
	Metadata TransactionMetadata `json:"metadata"`
}

// PaystackResponse represents the standard response envelope from Paystack
type PaystackResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// PaystackInitData is the payload of a successful initialize call
type PaystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaystackVerifyData is the payload of a verify call
type PaystackVerifyData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	GatewayResponse string `json:"gateway_response"`
}
