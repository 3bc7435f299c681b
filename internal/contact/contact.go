// Package contact validates and delivers contact form submissions.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/Zachkp/cyber-portfolio/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Notification texts shown in the toast
const (
	MsgNameRequired    = "Please enter your name."
	MsgEmailInvalid    = "Please enter a valid email address."
	MsgMessageRequired = "Please enter your message."
	MsgSent            = "Message sent successfully! Thank you for reaching out."
	MsgSendFailed      = "Failed to send message. Please try again."
)

// ToastTTL is how long a notification stays up
const ToastTTL = 3 * time.Second

type Submission struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

// ValidationError is a rejected field. The entered data must be kept.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// TransportError wraps a delivery failure
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("contact delivery failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidEmail reports whether s looks like local-part@domain.tld with no whitespace
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks name, email, then message, returning the first failure
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: MsgNameRequired}
	}
	if !ValidEmail(s.Email) {
		return &ValidationError{Field: "email", Message: MsgEmailInvalid}
	}
	if strings.TrimSpace(s.Message) == "" {
		return &ValidationError{Field: "message", Message: MsgMessageRequired}
	}
	return nil
}

// Sender delivers a validated submission
type Sender interface {
	Send(ctx context.Context, sub Submission) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, sub Submission) error

func (f SenderFunc) Send(ctx context.Context, sub Submission) error {
	return f(ctx, sub)
}

// Archive keeps a copy of every accepted submission
type Archive interface {
	SaveMessage(ctx context.Context, m store.Message) (int64, error)
	SetMessageStatus(ctx context.Context, id int64, status string) error
}

type Service struct {
	sender  Sender
	archive Archive
	logger  *log.Logger
}

// NewService wires a sender and an optional archive
func NewService(sender Sender, archive Archive, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{sender: sender, archive: archive, logger: logger}
}

// Submit validates and delivers. It returns *ValidationError or *TransportError on failure.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	var id int64
	if s.archive != nil {
		var err error
		id, err = s.archive.SaveMessage(ctx, store.Message{
			Name:   sub.Name,
			Email:  sub.Email,
			Body:   sub.Message,
			Status: store.StatusPending,
		})
		if err != nil {
			// Delivery still matters more than the archive copy
			s.logger.Printf("Error archiving contact message: %v", err)
		}
	}

	sendErr := s.sender.Send(ctx, sub)

	if s.archive != nil && id != 0 {
		status := store.StatusDelivered
		if sendErr != nil {
			status = store.StatusFailed
		}
		if err := s.archive.SetMessageStatus(ctx, id, status); err != nil {
			s.logger.Printf("Error updating contact message %d: %v", id, err)
		}
	}

	if sendErr != nil {
		s.logger.Printf("Error sending contact message: %v", sendErr)
		return &TransportError{Err: sendErr}
	}
	s.logger.Printf("Contact message delivered from %s", sub.Email)
	return nil
}

// Kind separates success toasts from error toasts
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	Kind    Kind          `json:"kind"`
	Message string        `json:"message"`
	TTL     time.Duration `json:"-"`
}

// TTLMillis is the auto-dismiss delay for the page script
func (n Notification) TTLMillis() int64 {
	return n.TTL.Milliseconds()
}

// Notify maps a Submit result to the toast the visitor sees
func Notify(err error) Notification {
	if err == nil {
		return Notification{Kind: KindSuccess, Message: MsgSent, TTL: ToastTTL}
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return Notification{Kind: KindError, Message: verr.Message, TTL: ToastTTL}
	}
	return Notification{Kind: KindError, Message: MsgSendFailed, TTL: ToastTTL}
}
