package focuserr

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := NotFound("uid %d not found in %s", 4242, "/etc/passwd")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeIO))

	wrapped := fmt.Errorf("resolving target: %w", err)
	assert.True(t, HasCode(wrapped, CodeNotFound))

	assert.False(t, HasCode(os.ErrNotExist, CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "uid 7 not found in /etc/passwd",
		Describe(fmt.Errorf("outer: %w", NotFound("uid %d not found in %s", 7, "/etc/passwd"))))
	assert.Equal(t, "write /tmp/kwinrc: boom",
		Describe(IO(fmt.Errorf("boom"), "write", "/tmp/kwinrc")))
	assert.Equal(t, "plain", Describe(fmt.Errorf("plain")))
	assert.Equal(t, "", Describe(nil))
}

func TestConstructorsCarryCodes(t *testing.T) {
	assert.True(t, HasCode(InvalidInput("class is empty"), CodeInvalidInput))
	assert.True(t, HasCode(ExternalTool(fmt.Errorf("exit status 1"), "qdbus"), CodeExternalTool))
	assert.True(t, HasCode(Config(nil, "reload.tools is empty"), CodeConfig))
	assert.True(t, HasCode(Config(fmt.Errorf("yaml: bad"), "parsing %s", "x.yaml"), CodeConfig))
}
