package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProdLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("prod", &buf)

	log.Debug("hidden")
	log.Info("cart updated", "chat_id", int64(7))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "cart updated", rec["msg"])
	require.Equal(t, "art-shop-bot", rec["service"])
	require.EqualValues(t, 7, rec["chat_id"])
}

func TestDevLoggerIsVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("dev", &buf)

	log.Debug("tick")
	require.Contains(t, buf.String(), "level=DEBUG")
	require.Contains(t, buf.String(), "msg=tick")
}
