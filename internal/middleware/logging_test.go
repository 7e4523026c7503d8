package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
		wantCode  string
	}{
		{"ok", nil, "INFO", "RPC ok", ""},
		{"connect error", connect.NewError(connect.CodeUnauthenticated, errors.New("no token")), "WARN", "RPC error", "unauthenticated"},
		{"plain error", errors.New("boom"), "ERROR", "RPC error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return connect.NewResponse(&struct{}{}), nil
			})

			_, err := LoggingInterceptor(logger)(next)(context.Background(), connect.NewRequest(&struct{}{}))
			assert.Equal(t, tt.err, err)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantMsg, entry["msg"])
			assert.Contains(t, entry, "procedure")
			assert.Contains(t, entry, "duration_ms")
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, entry["code"])
			}
		})
	}
}
