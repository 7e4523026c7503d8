package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"connectrpc.com/connect"

	"github.com/kristykoh/krispyledger-web/internal/dialog"
	"github.com/kristykoh/krispyledger-web/internal/service"
	"github.com/kristykoh/krispyledger-web/internal/session"
)

var errQuit = errors.New("quit")

var commands = map[string]dialog.Kind{
	"/start":      dialog.KindStart,
	"/adduser":    dialog.KindAddUserBegin,
	"/removeuser": dialog.KindRemoveUserBegin,
	"/expense":    dialog.KindExpenseBegin,
	"/done":       dialog.KindAddUserDone,
	"/cancel":     dialog.KindCancel,
	"/summary":    dialog.KindViewSummary,
	"/log":        dialog.KindViewLog,
	"/clear":      dialog.KindClearAll,
}

// parseLine turns one console line into an intent. "#N" picks the N-th
// button of the last reply, counting across rows from 1.
func parseLine(line string, buttons []dialog.Choice) (dialog.Intent, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return dialog.Intent{}, errors.New("nothing entered")
	case line == "/quit" || line == "/exit":
		return dialog.Intent{}, errQuit
	case strings.HasPrefix(line, "#"):
		n, err := strconv.Atoi(line[1:])
		if err != nil || n < 1 || n > len(buttons) {
			return dialog.Intent{}, fmt.Errorf("no button %s", line)
		}
		return dialog.DecodeToken(buttons[n-1].Token)
	case strings.HasPrefix(line, "/"):
		kind, ok := commands[strings.ToLower(line)]
		if !ok {
			return dialog.Intent{}, fmt.Errorf("unknown command %s", line)
		}
		return dialog.Of(kind), nil
	}
	return dialog.Text(line), nil
}

// reply is what the console shows after each line.
type reply struct {
	Phase   string
	Renders []dialog.RenderRequest
	Failed  bool
}

// buttons lists every button of the reply in display order.
func (r *reply) buttons() []dialog.Choice {
	var out []dialog.Choice
	for _, render := range r.Renders {
		for _, row := range render.Choices {
			out = append(out, row...)
		}
	}
	return out
}

// markdown formats a reply for glamour. Buttons are numbered across all
// renders so "#N" matches buttons().
func (r *reply) markdown() string {
	var b strings.Builder
	n := 0
	for i, render := range r.Renders {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(render.Text)
		b.WriteString("\n")
		if len(render.Choices) > 0 {
			b.WriteString("\n")
		}
		for _, row := range render.Choices {
			labels := make([]string, 0, len(row))
			for _, c := range row {
				n++
				labels = append(labels, fmt.Sprintf("`#%d` %s", n, c.Label))
			}
			b.WriteString("- " + strings.Join(labels, " · ") + "\n")
		}
	}
	return b.String()
}

type dispatcher interface {
	dispatch(ctx context.Context, conversationID string, in dialog.Intent) (*reply, error)
}

// localDispatcher runs the dialog in-process.
type localDispatcher struct {
	manager *session.Manager
}

func (d localDispatcher) dispatch(ctx context.Context, conversationID string, in dialog.Intent) (*reply, error) {
	res, err := d.manager.Handle(ctx, conversationID, in)
	if res == nil {
		return nil, err
	}
	// A store error still carries a failure reply for the user.
	return &reply{Phase: res.Phase.String(), Renders: res.Renders, Failed: res.Failed}, nil
}

// remoteDispatcher calls a running server's Dispatch procedure.
type remoteDispatcher struct {
	client *connect.Client[service.DispatchRequest, service.DispatchResponse]
	token  string
}

func (d remoteDispatcher) dispatch(ctx context.Context, conversationID string, in dialog.Intent) (*reply, error) {
	req := connect.NewRequest(&service.DispatchRequest{
		ConversationID: conversationID,
		Intent:         &service.IntentMessage{Kind: string(in.Kind), Arg: in.Arg},
	})
	if d.token != "" {
		req.Header().Set("Authorization", "Bearer "+d.token)
	}
	resp, err := d.client.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return &reply{Phase: resp.Msg.Phase, Renders: resp.Msg.Renders, Failed: resp.Msg.Failed}, nil
}
