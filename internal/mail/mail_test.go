package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/secure-admin/internal/config"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	msg := string(buildMessage("SecureAdmin <no-reply@localhost>", "a@x.com", "Password reset", "<p>tok</p>"))
	assert.Contains(t, msg, "From: SecureAdmin <no-reply@localhost>\r\n")
	assert.Contains(t, msg, "To: a@x.com\r\n")
	assert.Contains(t, msg, "Subject: Password reset\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "<p>tok</p>")
}

func TestUnconfiguredSenderIsNoop(t *testing.T) {
	t.Parallel()

	s := NewSender(config.MailConfig{})
	assert.False(t, s.Configured())
	// Without a host nothing is dialed and the send reports success;
	// the consumer logs the token instead.
	assert.NoError(t, s.SendPasswordReset("a@x.com", "tok"))
}
