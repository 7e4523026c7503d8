package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristykoh/krispyledger-web/internal/dialog"
	"github.com/kristykoh/krispyledger-web/internal/session"
	"github.com/kristykoh/krispyledger-web/internal/storage/memory"
)

func TestParseLine(t *testing.T) {
	buttons := []dialog.Choice{
		{Label: "Alice", Token: dialog.EncodeToken(dialog.SelectPayer("Alice"))},
		{Label: "Cancel", Token: dialog.EncodeToken(dialog.Of(dialog.KindCancel))},
	}

	tests := []struct {
		line    string
		want    dialog.Intent
		wantErr bool
	}{
		{line: "/start", want: dialog.Of(dialog.KindStart)},
		{line: " /Expense ", want: dialog.Of(dialog.KindExpenseBegin)},
		{line: "#1", want: dialog.SelectPayer("Alice")},
		{line: "#2", want: dialog.Of(dialog.KindCancel)},
		{line: "12.50", want: dialog.Text("12.50")},
		{line: "#3", wantErr: true},
		{line: "#x", wantErr: true},
		{line: "/dance", wantErr: true},
		{line: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseLine(tt.line, buttons)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseLine("/quit", nil)
	assert.ErrorIs(t, err, errQuit)
}

func TestReplyMarkdownNumbersButtonsAcrossRenders(t *testing.T) {
	r := &reply{Renders: []dialog.RenderRequest{
		{Text: "Summary"},
		{Text: "Menu", Choices: [][]dialog.Choice{
			{{Label: "A", Token: "start"}, {Label: "B", Token: "cancel"}},
			{{Label: "C", Token: "view_log"}},
		}},
	}}

	md := r.markdown()
	assert.Contains(t, md, "`#1` A · `#2` B")
	assert.Contains(t, md, "`#3` C")
	assert.Len(t, r.buttons(), 3)
}

func TestChatLoop_AddsUsers(t *testing.T) {
	store := memory.NewStore()
	d := localDispatcher{manager: session.NewManager(store)}

	in := strings.NewReader(strings.Join([]string{
		"/adduser",
		"Alice",
		"Bob",
		"/done",
		"/quit",
	}, "\n"))
	var out bytes.Buffer

	err := chatLoop(context.Background(), d, "console", in, &out, func(s string) string { return s })
	require.NoError(t, err)

	doc, err := store.Load(context.Background(), "console")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, doc.Users)
	assert.Contains(t, out.String(), "[awaiting_user_name] > ")
}
