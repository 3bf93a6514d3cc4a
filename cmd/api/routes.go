package main

import (
	"callbridge/internal/calls"
	"callbridge/internal/config"
	"callbridge/internal/httpapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, cfg config.Config, callService *calls.Service, leadFetcher httpapi.LeadFetcher) {
	// The call button is embedded in CRM pages on other origins, so CORS is
	// wide open by requirement.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"*"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	h := httpapi.Handlers{
		Calls:     callService,
		CRM:       leadFetcher,
		StaticDir: cfg.App.StaticDir,
	}

	r.GET("/", h.Home)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/lead/:recordId", h.GetLead)
		api.POST("/call", h.StartCall)
		api.GET("/call-status/:callId", h.CallStatus)
		api.GET("/calls", h.ListCalls)
	}

	// Provider webhook (public). Secret verification is flag-gated; see
	// httpapi.WebhookAuth.
	r.POST("/webhook/vapi",
		httpapi.WebhookAuth(cfg.VoiceAI.WebhookSecret, cfg.VoiceAI.WebhookVerify),
		h.Webhook,
	)
}
