package logtrace

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestRequestId(t *testing.T) {
	assert.Equal(t, "", RequestIdFromContext(context.Background()))

	ctx := WithRequestId(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIdFromContext(ctx))
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	InitLoggerWithWriter(&buf, "warn")
	log.Info().Msg("dropped")
	log.Warn().Str("component", "test").Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Equal(t, "kept", gjson.Get(out, "message").String())
	assert.Equal(t, "test", gjson.Get(out, "component").String())
	assert.True(t, gjson.Get(out, "time").Exists())

	buf.Reset()
	InitLoggerWithWriter(&buf, "bogus")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
