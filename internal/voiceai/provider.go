package voiceai

import (
	"context"
	"fmt"
)

// Provider defines the provider-agnostic interface used by business logic.
//
// Rules:
// - No provider HTTP calls outside voiceai adapters.
// - Keep request/response types provider-agnostic; the call id is the
//   provider's identifier and is never chosen by this system.
type Provider interface {
	Name() string

	CreateCall(ctx context.Context, req CreateCallRequest) (CreateCallResult, error)
	GetCall(ctx context.Context, callID string) (CallInfo, error)
}

// CreateCallRequest describes one outbound call to place.
type CreateCallRequest struct {
	// CustomerNumber is E.164; normalization happens before this layer.
	CustomerNumber string
	CustomerName   string

	Overrides AssistantOverrides

	// Metadata is echoed back by the provider in webhook events.
	Metadata map[string]string
}

type CreateCallResult struct {
	CallID string
	Status string
}

// CallInfo is a live status snapshot from the provider.
type CallInfo struct {
	CallID    string
	Status    string
	StartedAt string
	EndedAt   string
}

// UpstreamError mirrors a non-success provider response so the HTTP layer
// can propagate the provider's status and body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("voiceai: upstream status %d: %s", e.Status, e.Body)
}
