// Package service exposes the dialog engine to chat bridges over Connect.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/kristykoh/krispyledger-web/internal/dialog"
	"github.com/kristykoh/krispyledger-web/internal/middleware"
	"github.com/kristykoh/krispyledger-web/internal/session"
)

const (
	// DialogServiceName is the fully-qualified service name.
	DialogServiceName = "krispyledger.v1.DialogService"
	// DispatchProcedure delivers one intent for a conversation.
	DispatchProcedure = "/" + DialogServiceName + "/Dispatch"
)

// IntentMessage is a typed intent as sent by a bridge.
type IntentMessage struct {
	Kind string `json:"kind"`
	Arg  string `json:"arg,omitempty"`
}

// DispatchRequest carries either an intent or a button token.
type DispatchRequest struct {
	ConversationID string         `json:"conversationId"`
	Intent         *IntentMessage `json:"intent,omitempty"`
	Token          string         `json:"token,omitempty"`
}

type DispatchResponse struct {
	RequestID string                 `json:"requestId"`
	Phase     string                 `json:"phase"`
	Renders   []dialog.RenderRequest `json:"renders"`
	Report    *dialog.MutationReport `json:"report,omitempty"`
	Failed    bool                   `json:"failed"`
}

// Dispatcher is the part of the session manager the service needs.
type Dispatcher interface {
	Handle(ctx context.Context, conversationID string, in dialog.Intent) (*session.Response, error)
}

// DialogService implements the Connect DialogService.
type DialogService struct {
	sessions Dispatcher
	logger   *slog.Logger
}

// NewDialogService creates a DialogService backed by the given session
// manager.
func NewDialogService(sessions Dispatcher, logger *slog.Logger) *DialogService {
	return &DialogService{sessions: sessions, logger: logger}
}

// Dispatch decodes the request into an intent and runs it.
func (s *DialogService) Dispatch(ctx context.Context, req *connect.Request[DispatchRequest]) (*connect.Response[DispatchResponse], error) {
	requestID := uuid.NewString()
	msg := req.Msg

	if strings.TrimSpace(msg.ConversationID) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("conversationId is required"))
	}

	in, err := decodeIntent(msg)
	if err != nil {
		s.logger.Warn("Dispatch rejected",
			"request_id", requestID,
			"conversation_id", msg.ConversationID,
			"error", err,
		)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	s.logger.Debug("Dispatch request received",
		"request_id", requestID,
		"conversation_id", msg.ConversationID,
		"bridge", middleware.GetBridge(ctx),
		"kind", in.Kind,
	)

	res, err := s.sessions.Handle(ctx, msg.ConversationID, in)
	if err != nil {
		var storeErr *session.StoreError
		if !errors.As(err, &storeErr) || res == nil {
			s.logger.Error("Dispatch failed", "request_id", requestID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		// The user already sees a failure message; the call itself succeeds.
		s.logger.Warn("Dispatch answered with failure",
			"request_id", requestID,
			"conversation_id", msg.ConversationID,
			"op", storeErr.Op,
		)
	}

	resp := connect.NewResponse(&DispatchResponse{
		RequestID: requestID,
		Phase:     res.Phase.String(),
		Renders:   res.Renders,
		Report:    res.Report,
		Failed:    res.Failed,
	})
	resp.Header().Set("X-Request-Id", requestID)
	return resp, nil
}

func decodeIntent(msg *DispatchRequest) (dialog.Intent, error) {
	switch {
	case msg.Token != "" && msg.Intent != nil:
		return dialog.Intent{}, errors.New("send either intent or token, not both")
	case msg.Token != "":
		return dialog.DecodeToken(msg.Token)
	case msg.Intent != nil:
		kind := dialog.Kind(msg.Intent.Kind)
		if !kind.Valid() {
			return dialog.Intent{}, fmt.Errorf("unknown intent kind %q", msg.Intent.Kind)
		}
		return dialog.Intent{Kind: kind, Arg: msg.Intent.Arg}, nil
	default:
		return dialog.Intent{}, errors.New("intent or token is required")
	}
}

// NewDialogServiceHandler builds an HTTP handler for the service, returning
// the path on which to mount it.
func NewDialogServiceHandler(svc *DialogService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
	dispatch := connect.NewUnaryHandler(DispatchProcedure, svc.Dispatch, opts...)

	return "/" + DialogServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DispatchProcedure:
			dispatch.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewDispatchClient returns a client for the Dispatch procedure on baseURL.
func NewDispatchClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *connect.Client[DispatchRequest, DispatchResponse] {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return connect.NewClient[DispatchRequest, DispatchResponse](
		httpClient,
		strings.TrimRight(baseURL, "/")+DispatchProcedure,
		opts...,
	)
}
