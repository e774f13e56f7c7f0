// Command sendmail delivers one test message through the configured SMTP relay
// (Mailpit in development) to check notification settings.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"example.com/property-listing/app/internal/config"
	"example.com/property-listing/app/internal/infra/notify"
	"example.com/property-listing/app/internal/logger"
)

func main() {
	to := pflag.String("to", "hello@yopmail.com", "recipient address")
	subject := pflag.String("subject", "Mailpit Test", "message subject")
	body := pflag.String("body", "This is a test email sent via Mailpit SMTP.", "message body")
	pflag.Parse()

	cfg, err := config.Load(config.Options{SMTPOnly: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Level, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	n := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})
	if err := n.Send(context.Background(), *to, *subject, *body); err != nil {
		log.Fatal("send failed", zap.String("to", *to), zap.Error(err))
	}
	log.Info("mail sent", zap.String("to", *to), zap.String("relay", fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)))
}
