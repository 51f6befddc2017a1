package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerInterface_Contract(t *testing.T) {
	var _ Logger = NewLogger()
	var _ Logger = NewLoggerWithOutput(&bytes.Buffer{})
}

func TestLogrusLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(&buf)

	log.WithFields(map[string]interface{}{"run_id": "r1"}).Info("uploaded")
	assert.Contains(t, buf.String(), "uploaded")
	assert.Contains(t, buf.String(), "r1")
}

func TestLogrusLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(&buf)

	log.WithComponent("publisher").Info("hello")
	assert.Contains(t, buf.String(), "publisher")
}

func TestLogrusLogger_Formatf(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(&buf)

	log.Infof("Uploaded tier: %s", "free")
	assert.Contains(t, buf.String(), "Uploaded tier: free")
}
