package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"vaktdata.no/vaktdata/cache"
	"vaktdata.no/vaktdata/core"
	"vaktdata.no/vaktdata/infrastructure/communication"
	"vaktdata.no/vaktdata/infrastructure/devops"
	v1 "vaktdata.no/vaktdata/ledger/v1"
	"vaktdata.no/vaktdata/security"
	staffing "vaktdata.no/vaktdata/staffing/core"
	"vaktdata.no/vaktdata/staffing/web/handlers"
	"vaktdata.no/vaktdata/web/middlewares"
)

func main() {
	r := gin.Default()

	dsn := os.Getenv("DSN")
	dm, err := core.New(dsn, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	base64Secret := os.Getenv("VAKTDATA_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	ledgerURL := os.Getenv("LEDGER_URL")
	ledgerSecret := base64Secret
	if ledgerURL == "" {
		cfg, err := devops.LoadServiceConfig(context.Background())
		if err != nil {
			log.Fatal("Failed to load service config:", err)
		}
		ledgerURL = cfg.LedgerURL
		ledgerSecret = cfg.LedgerSigningSecret
	}
	fmt.Printf("using ledger: %s\n", ledgerURL)

	ledgerToken, err := security.CreateIdentityToken(&security.Identity{
		UserID: "vaktdata-service",
		Name:   "vaktdata",
	}, ledgerSecret, 3600)
	if err != nil {
		log.Fatal("Failed to create ledger token:", err)
	}
	client := v1.NewLedgerClient(ledgerURL, ledgerToken)

	var notifier staffing.Notifier
	if os.Getenv("SLACK_BOT_TOKEN") != "" {
		notifier = communication.ConnectSlack()
	}

	ep := &handlers.Endpoint{
		Dm:     dm,
		Cache:  cache.New(),
		Sync:   staffing.NewSyncService(client.TimeEntries, notifier),
		Tokens: security.NewSessionTokenStore(),
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	handlers.Register(protected, ep, middlewares.SessionTokenGuard(ep.Tokens))

	r.Run("0.0.0.0:8090")
}
