package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/ring-traffic/internal/auth"
)

func TestReadPassword(t *testing.T) {
	pw, err := readPassword([]string{"from-args"}, strings.NewReader("ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-args", pw)

	pw, err = readPassword(nil, strings.NewReader("from-stdin\r\nnext\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", pw)

	pw, err = readPassword(nil, strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("password123")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword("password123", hash))

	_, err = hashPassword("short")
	assert.Error(t, err)
}
