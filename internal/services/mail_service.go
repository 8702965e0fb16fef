package services

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/mortan11/app-prompts/config"
)

// SendResetEmail delivers a password-reset link over SMTP. When mail is not
// configured the link is logged instead, so local setups keep working.
func SendResetEmail(cfg *config.Config, toEmail, link string) {
	if cfg.MailServer == "" || cfg.MailUsername == "" || cfg.MailPassword == "" {
		zap.L().Info("password reset link (mail not configured)",
			zap.String("email", toEmail),
			zap.String("link", link),
		)
		return
	}

	body := fmt.Sprintf(`Hello,

We received a request to reset your PromptLab password.
Open the link below to choose a new password:

%s

If this wasn't you, ignore this email.
`, link)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Reset your password - PromptLab\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		cfg.MailFrom, toEmail, body,
	))

	addr := fmt.Sprintf("%s:%d", cfg.MailServer, cfg.MailPort)
	auth := smtp.PlainAuth("", cfg.MailUsername, cfg.MailPassword, cfg.MailServer)

	if err := smtp.SendMail(addr, auth, cfg.MailFrom, []string{toEmail}, msg); err != nil {
		// Fall back to logging the link rather than losing it
		zap.L().Warn("password reset mail delivery failed",
			zap.String("email", toEmail),
			zap.String("link", link),
			zap.Error(err),
		)
	}
}
