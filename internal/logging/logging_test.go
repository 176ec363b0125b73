package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters("backdrop", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("mounted %d particles", 3000)
	l.Warnf("no soundtrack")
	l.Errorf("watch failed: %v", "boom")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[backdrop] INFO: mounted 3000 particles")
	assert.Contains(t, errOut.String(), "[backdrop] WARN: no soundtrack")
	assert.Contains(t, errOut.String(), "[backdrop] ERROR: watch failed: boom")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible %d", 2)
	assert.Contains(t, out.String(), "DEBUG: visible 2")
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Infof("ignored")
}
