package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/ui/style"
)

func TestSeverity(t *testing.T) {
	icon, color := style.Severity(domain.SeverityError)
	assert.Equal(t, style.Cross, icon)
	assert.Equal(t, style.Red, color)

	icon, color = style.Severity(domain.SeverityWarning)
	assert.Equal(t, style.Warning, icon)
	assert.Equal(t, style.Yellow, color)

	icon, _ = style.Severity(domain.SeverityOff)
	assert.Equal(t, style.Tilde, icon)
}
