package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"sealgate/internal/app"
	"sealgate/internal/crypto"
	"sealgate/internal/gateway"
	"sealgate/internal/services/exchange"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("SEALGATE_DEBUG") == "true" {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := app.Load()

	// Loaded exactly once; nothing re-reads configuration per request.
	_, priv, err := crypto.LoadPrivateKey(cfg.PrivateKey)
	if err != nil {
		log.WithError(err).Fatal("loading private key from SEALGATE_PRIVATE_KEY")
	}
	pubPEM, err := crypto.EncodePublicKey(&priv.PublicKey)
	if err != nil {
		log.WithError(err).Fatal("deriving public key")
	}

	exchanger := exchange.New(priv, exchange.Echo)
	srv := gateway.NewServer(exchanger, pubPEM, log)

	httpSrv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"listen":      cfg.Listen,
			"fingerprint": crypto.Fingerprint(pubPEM),
		}).Info("gateway listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("gateway server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("gateway stopped")
}
