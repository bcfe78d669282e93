package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func captureInfo() *bytes.Buffer {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)
	return &buf
}

func captureError() *bytes.Buffer {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)
	return &buf
}

func captureDebug() *bytes.Buffer {
	var buf bytes.Buffer
	DebugLogger = log.New(&buf, "DEBUG: ", 0)
	return &buf
}

func TestInfo(t *testing.T) {
	buf := captureInfo()

	Info("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestInfoWithKeyValues(t *testing.T) {
	buf := captureInfo()

	Info("adjustment applied", "user_id", 42, "kind", "BONUS")

	output := buf.String()
	assert.Contains(t, output, "adjustment applied")
	assert.Contains(t, output, "user_id=42")
	assert.Contains(t, output, "kind=BONUS")
}

func TestInfoWithOddKeyValues(t *testing.T) {
	buf := captureInfo()

	Info("partial", "key1", "value1", "dangling")

	output := buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "dangling")
}

func TestError(t *testing.T) {
	buf := captureError()

	Error("test error")

	assert.Contains(t, buf.String(), "test error")
}

func TestDebug(t *testing.T) {
	buf := captureDebug()

	Debug("test debug")

	assert.Contains(t, buf.String(), "test debug")
}

func TestInfof(t *testing.T) {
	buf := captureInfo()

	Infof("test %s", "message")

	assert.Contains(t, buf.String(), "test message")
}

func TestErrorf(t *testing.T) {
	buf := captureError()

	Errorf("test %s: %d", "error", 7)

	assert.Contains(t, buf.String(), "test error: 7")
}

func TestDebugf(t *testing.T) {
	buf := captureDebug()

	Debugf("test %s", "debug")

	assert.Contains(t, buf.String(), "test debug")
}
