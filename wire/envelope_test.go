package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clogwench/wincore/uid"
)

func TestValidateAcceptsExactlyOneVariant(t *testing.T) {
	cmd := NewSystemShutdown()
	assert.NoError(t, cmd.Validate())
}

func TestValidateRejectsZeroVariants(t *testing.T) {
	assert.Error(t, Command{Kind: KindSystemShutdown}.Validate())
}

func TestValidateRejectsMultipleVariants(t *testing.T) {
	cmd := NewSystemShutdown()
	cmd.KeyDown = &KeyDown{AppID: uid.New()}
	assert.Error(t, cmd.Validate())
}

func TestDebugPayloadConstructorsSetKind(t *testing.T) {
	p := NewLog("hello")
	assert.Equal(t, KindLog, p.Kind)
	if assert.NotNil(t, p.Log) {
		assert.Equal(t, "hello", p.Log.Message)
	}
}
