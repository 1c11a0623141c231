/**
 * @description
 * This is the main entry point for the checkout portal. It initializes
 * configuration, the external service clients (merchant catalog, payment
 * firewall, investigation agent), the optional RabbitMQ decision-event
 * producer, the checkout session, and the HTTP server, then wires everything
 * together and starts serving the presentation boundary.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/go-chi/chi/v5: For HTTP routing.
 * - github.com/joho/godotenv: For loading .env files during local development.
 * - internal/api, internal/app, internal/config: Internal packages for the portal.
 * - pkg/agentclient, pkg/catalogclient, pkg/firewallclient, pkg/rabbitmq:
 *   Clients for the external collaborators.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/api"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/app"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/config"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/pkg/agentclient"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/pkg/catalogclient"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/pkg/firewallclient"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}

	log.Printf("level=info component=bootstrap msg=\"starting checkout-portal\" port=%s firewall=%s", cfg.ServerPort, cfg.FirewallAPIBaseURL)

	httpTimeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	agentTimeout := time.Duration(cfg.AgentTimeoutSeconds) * time.Second

	catalogClient := catalogclient.NewClient(cfg.CatalogAPIBaseURL, httpTimeout)
	firewallClient := firewallclient.NewClient(cfg.FirewallAPIBaseURL, httpTimeout)
	agentClient := agentclient.NewClient(cfg.AgentAPIBaseURL, agentTimeout)

	// The decision-event producer is optional telemetry; a missing or
	// unreachable broker must never block checkout.
	var producer rabbitmq.Publisher
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		log.Println("level=info component=bootstrap msg=\"rabbitmq url not configured; decision events disabled\"")
		producer = &rabbitmq.EventProducerFallback{}
	} else if p, prodErr := rabbitmq.NewEventProducer(cfg.RabbitMQURL); prodErr != nil {
		log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; using fallback\" err=%v", prodErr)
		producer = &rabbitmq.EventProducerFallback{}
	} else {
		producer = p
		log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
	}
	defer producer.Close()

	session := app.NewSession(catalogClient, firewallClient, agentClient, producer, cfg.DecisionEventExchange)
	log.Printf("level=info component=bootstrap msg=\"session initialized\" customer_id=%s", session.CustomerID())

	// Fetch the catalog once at startup. A failure is recorded in session
	// state and surfaced to the operator, who can retry manually.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
		defer cancel()
		if err := session.LoadMerchants(ctx); err != nil {
			log.Printf("level=warn component=bootstrap msg=\"initial catalog fetch failed\" err=%v", err)
		}
	}()

	handlers := api.NewCheckoutHandlers(session)
	router := api.CheckoutRoutes(handlers)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
