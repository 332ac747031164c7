package http

import (
	"errors"
	"fmt"
	"html"
	"mime"
	"net/http"
	"strings"

	"github.com/u44592/hni/internal/core/application/events"
	"github.com/u44592/hni/internal/core/application/usecases/commands"
	"github.com/u44592/hni/internal/core/domain/model/user"
	"github.com/u44592/hni/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	ReplySomethingWentWrong = "Something went wrong. Please try again later."
	ReplyTooManyMessages    = "You are sending messages too quickly. Please wait a moment and try again."
)

type replyFormat int

const (
	formatPlain replyFormat = iota
	formatHTML
	formatJSON
)

// PostUserMessage handles POST /usermessage, the SMS gateway webhook. The form
// carries authKey, phoneNumber, sessionId, userMessage and testMode; the reply
// format follows the Accept header.
func (s *Server) PostUserMessage(ctx echo.Context) error {
	format := negotiate(ctx.Request().Header.Get(echo.HeaderAccept))

	form, err := ctx.FormParams()
	if err != nil {
		return s.replyError(ctx, format, http.StatusBadRequest, ReplySomethingWentWrong)
	}

	raw := strings.TrimSpace(form.Get("phoneNumber"))
	sessionID := form.Get("sessionId")

	s.logger.InfoContext(ctx.Request().Context(), "received a message",
		"phone", raw,
		"session_id", sessionID,
		"test_mode", form.Get("testMode"),
	)

	// An empty userMessage is a turn; an absent one is a malformed request.
	if _, ok := form["userMessage"]; !ok {
		return s.replyError(ctx, format, http.StatusBadRequest, ReplySomethingWentWrong)
	}
	text := form.Get("userMessage")

	phone, err := user.NormalizePhone(raw)
	if err != nil {
		return s.replyError(ctx, format, http.StatusBadRequest, ReplySomethingWentWrong)
	}
	if !s.throttle.Allow(phone) {
		return s.replyError(ctx, format, http.StatusTooManyRequests, ReplyTooManyMessages)
	}

	reply, err := s.router.Route(ctx.Request().Context(), events.Event{
		Category:    events.CategoryMeal,
		PhoneNumber: phone,
		SessionID:   sessionID,
		Text:        text,
	})
	if err != nil {
		code, message := classify(err)
		if code == http.StatusInternalServerError {
			s.logger.ErrorContext(ctx.Request().Context(), "failed to handle message", "phone", phone, "error", err)
		}
		return s.replyError(ctx, format, code, message)
	}

	s.recorder.RecordInbound(http.StatusOK)
	switch format {
	case formatJSON:
		return ctx.JSON(http.StatusOK, SMSReply{Message: []string{reply}, Status: http.StatusOK})
	case formatHTML:
		return ctx.HTML(http.StatusOK, wrapHTML(reply))
	default:
		return ctx.String(http.StatusOK, reply)
	}
}

func (s *Server) replyError(ctx echo.Context, format replyFormat, code int, message string) error {
	s.recorder.RecordInbound(code)
	switch format {
	case formatJSON:
		return ctx.JSON(code, SMSError{Error: message, Status: code})
	case formatHTML:
		return ctx.HTML(code, wrapHTML(message))
	default:
		return ctx.String(code, message)
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrUserNotRegistered):
		return http.StatusForbidden, commands.ErrUserNotRegistered.Error()
	case errors.Is(err, commands.ErrConcurrentTurn):
		return http.StatusConflict, ReplySomethingWentWrong
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, ReplySomethingWentWrong
	default:
		return http.StatusInternalServerError, ReplySomethingWentWrong
	}
}

// negotiate picks the first supported media type listed in accept.
func negotiate(accept string) replyFormat {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case echo.MIMEApplicationJSON:
			return formatJSON
		case echo.MIMETextHTML:
			return formatHTML
		case echo.MIMETextPlain:
			return formatPlain
		}
	}
	return formatPlain
}

func wrapHTML(message string) string {
	return fmt.Sprintf("<html><body>%s</body></html>", html.EscapeString(message))
}
