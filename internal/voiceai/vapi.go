package voiceai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"callbridge/internal/config"
)

// VapiProvider talks to the Vapi REST API.
type VapiProvider struct {
	baseURL       string
	apiKey        string
	assistantID   string
	phoneNumberID string
	httpClient    *http.Client
}

func NewVapiProvider(cfg config.VoiceAIConfig, timeout time.Duration) *VapiProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &VapiProvider{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		assistantID:   cfg.AssistantID,
		phoneNumberID: cfg.PhoneNumberID,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

func (p *VapiProvider) Name() string { return "vapi" }

type vapiCreateCallBody struct {
	AssistantID        string             `json:"assistantId"`
	PhoneNumberID      string             `json:"phoneNumberId"`
	Customer           vapiCustomer       `json:"customer"`
	AssistantOverrides AssistantOverrides `json:"assistantOverrides"`
	Metadata           map[string]string  `json:"metadata,omitempty"`
}

type vapiCustomer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

type vapiCall struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	StartedAt string `json:"startedAt"`
	EndedAt   string `json:"endedAt"`
}

func (p *VapiProvider) CreateCall(ctx context.Context, req CreateCallRequest) (CreateCallResult, error) {
	body := vapiCreateCallBody{
		AssistantID:        p.assistantID,
		PhoneNumberID:      p.phoneNumberID,
		Customer:           vapiCustomer{Number: req.CustomerNumber, Name: req.CustomerName},
		AssistantOverrides: req.Overrides,
		Metadata:           req.Metadata,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return CreateCallResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/call/phone", bytes.NewReader(payload))
	if err != nil {
		return CreateCallResult{}, err
	}
	p.setHeaders(httpReq)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return CreateCallResult{}, fmt.Errorf("voiceai: create call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return CreateCallResult{}, fmt.Errorf("voiceai: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CreateCallResult{}, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	var out vapiCall
	if err := json.Unmarshal(raw, &out); err != nil {
		return CreateCallResult{}, fmt.Errorf("voiceai: decode call: %w", err)
	}
	return CreateCallResult{CallID: out.ID, Status: out.Status}, nil
}

func (p *VapiProvider) GetCall(ctx context.Context, callID string) (CallInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/call/"+callID, nil)
	if err != nil {
		return CallInfo{}, err
	}
	p.setHeaders(httpReq)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return CallInfo{}, fmt.Errorf("voiceai: get call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return CallInfo{}, fmt.Errorf("voiceai: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CallInfo{}, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	var out vapiCall
	if err := json.Unmarshal(raw, &out); err != nil {
		return CallInfo{}, fmt.Errorf("voiceai: decode call: %w", err)
	}
	return CallInfo{CallID: out.ID, Status: out.Status, StartedAt: out.StartedAt, EndedAt: out.EndedAt}, nil
}

func (p *VapiProvider) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
