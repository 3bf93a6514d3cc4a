package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"callbridge/internal/calls"
	"callbridge/internal/crm"
	"callbridge/internal/leads"
	"callbridge/internal/phone"
	"callbridge/internal/voiceai"
	"callbridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LeadFetcher is the slice of the CRM client the lead endpoint needs.
type LeadFetcher interface {
	GetLead(ctx context.Context, recordID string) (leads.Lead, error)
}

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Calls *calls.Service
	CRM   LeadFetcher

	// StaticDir holds the click-to-call page served at /.
	StaticDir string
}

// Home serves the static call page, or a plain-text fallback when the asset
// is missing.
func (h Handlers) Home(c *gin.Context) {
	page := filepath.Join(h.StaticDir, "index.html")
	if _, err := os.Stat(page); err != nil {
		c.String(http.StatusOK, "callbridge is running; call page asset is missing")
		return
	}
	c.File(page)
}

// GetLead fetches one CRM record and returns its normalized view.
// Upstream failures are mirrored; anything else is a 500.
func (h Handlers) GetLead(c *gin.Context) {
	log := logger.FromGin(c)

	recordID := c.Param("recordId")
	if recordID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "recordId required"})
		return
	}

	lead, err := h.CRM.GetLead(c.Request.Context(), recordID)
	if err != nil {
		var upstream *crm.UpstreamError
		if errors.As(err, &upstream) {
			log.Warn("crm fetch refused", "record_id", recordID, "status", upstream.Status)
			c.AbortWithStatusJSON(upstream.Status, gin.H{"error": upstream.Body})
			return
		}
		log.Error("crm fetch failed", "record_id", recordID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lead)
}

type startCallRequest struct {
	RecordID string `json:"recordId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Campaign string `json:"campaign"`
	Adset    string `json:"adset"`
	City     string `json:"city"`
	Source   string `json:"source"`
	Company  string `json:"company"`
}

// StartCall places an outbound call for a lead.
func (h Handlers) StartCall(c *gin.Context) {
	log := logger.FromGin(c)

	var req startCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Phone == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	res, err := h.Calls.Start(c.Request.Context(), leads.Lead{
		RecordID: req.RecordID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Campaign: req.Campaign,
		Adset:    req.Adset,
		City:     req.City,
		Source:   req.Source,
		Company:  req.Company,
	})
	if err != nil {
		if errors.Is(err, phone.ErrNotAPhone) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "phone is not a dialable number"})
			return
		}
		var upstream *voiceai.UpstreamError
		if errors.As(err, &upstream) {
			log.Warn("provider refused call", "status", upstream.Status)
			c.AbortWithStatusJSON(upstream.Status, gin.H{"error": upstream.Body})
			return
		}
		log.Error("call initiation failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// CallStatus answers a lifecycle poll. This endpoint never errors at the
// HTTP layer; provider failures degrade to the unknown status.
func (h Handlers) CallStatus(c *gin.Context) {
	view := h.Calls.Status(c.Request.Context(), c.Param("callId"))
	c.JSON(http.StatusOK, view)
}

// ListCalls returns the in-memory call records with summary counts.
func (h Handlers) ListCalls(c *gin.Context) {
	c.JSON(http.StatusOK, h.Calls.List())
}

// Webhook ingests provider events. It always acks 200: the sender must not
// see retries triggered by internal processing failures.
func (h Handlers) Webhook(c *gin.Context) {
	log := logger.FromGin(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warn("webhook body read failed", "err", err)
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	ev, err := voiceai.ParseWebhook(body)
	if err != nil {
		log.Warn("webhook parse failed", "err", err)
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	switch ev.EventType() {
	case voiceai.EventStatusUpdate:
		h.Calls.HandleStatusUpdate(ev)
	case voiceai.EventEndOfCallReport:
		h.Calls.HandleEndOfCall(ev)
	default:
		log.Debug("webhook event type ignored", "type", ev.EventType())
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
