// Package queue defines message payloads exchanged over the message broker.
package queue

// ResetQueueName is the durable queue carrying password-reset mail events.
const ResetQueueName = "mail.password_reset"

// PasswordResetEvent is published when a user requests a password reset.
// The delivery consumer renders the reset mail from it; no database
// access is needed on the consumer side.
type PasswordResetEvent struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	RequestedAt string `json:"requested_at"`
	ExpiresAt   string `json:"expires_at"`
}
