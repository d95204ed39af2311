package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/azurvoyages/tours-api/internal/notifier"
)

type EmailHandler struct {
	mailer *notifier.Mailer
}

func NewEmailHandler(mailer *notifier.Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

type SendEmailRequest struct {
	Body struct {
		To      string `json:"to,omitempty" doc:"Recipient address"`
		Subject string `json:"subject,omitempty"`
		Content string `json:"body,omitempty" doc:"Message body, plain text or HTML"`
		IsHTML  bool   `json:"isHtml,omitempty"`
		Cc      string `json:"cc,omitempty"`
		Bcc     string `json:"bcc,omitempty"`
	}
}

type SendEmailResponse struct {
	Body struct {
		Message string `json:"message"`
		To      string `json:"to"`
		Subject string `json:"subject"`
	}
}

// HandleSendEmail validates the payload field by field and dispatches
// synchronously: at most once, no retry, transport failures surfaced
// to the caller.
func (h *EmailHandler) HandleSendEmail(ctx context.Context, input *SendEmailRequest) (*SendEmailResponse, error) {
	b := input.Body

	var details []error
	if b.To == "" {
		details = append(details, &huma.ErrorDetail{Location: "body.to", Message: `The "to" field is required`})
	} else if !validEmailAddress(b.To) {
		details = append(details, &huma.ErrorDetail{Location: "body.to", Message: "The recipient address is not a valid email address"})
	}
	if b.Subject == "" {
		details = append(details, &huma.ErrorDetail{Location: "body.subject", Message: `The "subject" field is required`})
	}
	if b.Content == "" {
		details = append(details, &huma.ErrorDetail{Location: "body.body", Message: `The "body" field is required`})
	}
	if b.Cc != "" && !validEmailAddress(b.Cc) {
		details = append(details, &huma.ErrorDetail{Location: "body.cc", Message: "The cc address is not a valid email address"})
	}
	if b.Bcc != "" && !validEmailAddress(b.Bcc) {
		details = append(details, &huma.ErrorDetail{Location: "body.bcc", Message: "The bcc address is not a valid email address"})
	}
	if len(details) > 0 {
		return nil, huma.Error400BadRequest("Validation errors", details...)
	}

	if h.mailer == nil {
		return nil, huma.Error500InternalServerError("Mail transport not configured")
	}

	if err := h.mailer.SendEmail(b.To, b.Subject, b.Content, b.IsHTML, b.Cc, b.Bcc); err != nil {
		return nil, huma.Error500InternalServerError("Failed to send email: " + err.Error())
	}

	res := &SendEmailResponse{}
	res.Body.Message = "Email sent successfully"
	res.Body.To = b.To
	res.Body.Subject = b.Subject
	return res, nil
}
