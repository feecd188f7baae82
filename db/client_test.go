package db

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeptools/sqlbind/logger"
)

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestCloseClient(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	CloseClient("none", nil)
	assert.Contains(t, buf.String(), "nothing to close")

	ok := &closer{}
	CloseClient("main", ok)
	assert.True(t, ok.closed)
	assert.Contains(t, buf.String(), `"client":"main"`)

	bad := &closer{err: errors.New("busy")}
	CloseClient("reports", bad)
	assert.Contains(t, buf.String(), "failed to close")
	assert.Contains(t, buf.String(), "busy")
}
