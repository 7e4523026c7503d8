package dialog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidToken is returned for a token no button could have produced.
var ErrInvalidToken = errors.New("dialog: invalid token")

// Kinds a button may carry. Typed text never arrives as a token.
var tokenKinds = map[Kind]bool{
	KindStart:            true,
	KindAddUserBegin:     true,
	KindAddUserDone:      true,
	KindRemoveUserBegin:  true,
	KindRemoveUserName:   true,
	KindExpenseBegin:     true,
	KindSelectPayer:      true,
	KindSelectGroupSplit: true,
	KindSelectPairSplit:  true,
	KindCancel:           true,
	KindViewSummary:      true,
	KindViewLog:          true,
	KindClearAll:         true,
}

// EncodeToken packs a button intent as "kind" or "kind:arg".
func EncodeToken(in Intent) string {
	if in.Arg == "" {
		return string(in.Kind)
	}
	return string(in.Kind) + ":" + in.Arg
}

// DecodeToken reverses EncodeToken.
func DecodeToken(token string) (Intent, error) {
	kind, arg, _ := strings.Cut(token, ":")
	k := Kind(kind)
	if !tokenKinds[k] {
		return Intent{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	return Intent{Kind: k, Arg: arg}, nil
}

func choice(label string, in Intent) Choice {
	return Choice{Label: label, Token: EncodeToken(in)}
}
