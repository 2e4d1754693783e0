package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonUsesLastStderrLine(t *testing.T) {
	err := &CommandError{Name: "lp", Stderr: "lp: warning\nlp: The printer or class does not exist.", Err: errors.New("exit status 1")}
	assert.Equal(t, "lp: The printer or class does not exist.", Reason(err))
	assert.Equal(t, "plain", Reason(errors.New("plain")))
}

func TestExecCapturesStdoutAndStderr(t *testing.T) {
	if !Available("sh") {
		t.Skip("sh not available")
	}
	out, err := Exec{}.Run(context.Background(), "sh", "-c", "echo device for Office: ipp://x; echo oops >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, "device for Office: ipp://x\n", string(out))

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "oops", cmdErr.Stderr)
	assert.Equal(t, "sh: oops", cmdErr.Error())
}

func TestAvailable(t *testing.T) {
	assert.False(t, Available("lprun-definitely-not-installed"))
}
