package email

import (
	"errors"
	"net/textproto"
	"testing"

	"gatherly_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transportKind(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok)
	kind, _ := details["kind"].(string)
	return kind
}

func TestClassifySendError(t *testing.T) {
	authErr := ClassifySendError(&textproto.Error{Code: 535, Msg: "5.7.8 Authentication credentials invalid"})
	assert.Equal(t, "authentication", transportKind(t, authErr))

	rejectErr := ClassifySendError(&textproto.Error{Code: 550, Msg: "mailbox unavailable"})
	assert.Equal(t, "send", transportKind(t, rejectErr))

	connErr := ClassifySendError(errors.New("dial tcp 10.0.0.1:587: connection refused"))
	assert.Equal(t, "connection", transportKind(t, connErr))

	otherErr := ClassifySendError(errors.New("short write"))
	assert.Equal(t, "send", transportKind(t, otherErr))
}

func TestNewSMTPProvider_MissingConfig(t *testing.T) {
	_, err := NewSMTPProvider(Config{})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConfigurationError, appErr.Code)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{SMTPHost: "smtp.test", SMTPPort: 587, FromEmail: "noreply@test"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Config{SMTPPort: 587, FromEmail: "noreply@test"}.Validate())
	assert.Error(t, Config{SMTPHost: "smtp.test", SMTPPort: 0, FromEmail: "noreply@test"}.Validate())
	assert.Error(t, Config{SMTPHost: "smtp.test", SMTPPort: 587}.Validate())
}
