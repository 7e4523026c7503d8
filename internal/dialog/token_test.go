package dialog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	for _, in := range []Intent{
		Of(KindStart),
		Of(KindExpenseBegin),
		SelectPayer("Alice"),
		SelectPairSplit("Bob: the builder"),
		RemoveUserName("Carol"),
		Of(KindSelectGroupSplit),
	} {
		got, err := DecodeToken(EncodeToken(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestDecodeToken_Rejects(t *testing.T) {
	for _, token := range []string{"", "bogus", "amount_text:12", "text:hi", "add_user_name:Zed"} {
		_, err := DecodeToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestMainMenuTokensDecode(t *testing.T) {
	for _, row := range MainMenu() {
		for _, c := range row {
			_, err := DecodeToken(c.Token)
			assert.NoError(t, err, c.Label)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text    string
		want    string
		wantErr bool
	}{
		{"15.50", "15.5", false},
		{" $15.50 ", "15.5", false},
		{"0.01", "0.01", false},
		{"1,000", "", true},
		{"-5", "", true},
		{"0", "", true},
		{"ten", "", true},
		{"5.", "5", false},
		{".75", "0.75", false},
		{"999999999999.99", "999999999999.99", false},
		{"1e5", "", true},
		{"1E2", "", true},
		{"1e40000000", "", true},
		{"1000000000000", "", true},
		{"0.001", "", true},
		{"12.345", "", true},
		{strings.Repeat("9", 200), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseAmount(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "typing_amount", TypingAmount.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
