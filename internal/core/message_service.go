package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/db"
	"portfolio-backend-go/internal/models"
	"portfolio-backend-go/pkg/mailer"
	"portfolio-backend-go/pkg/messagequeue"
)

// defaultMessageLimit bounds the admin message list when no explicit limit
// is requested.
const defaultMessageLimit = 20

// ErrSubmissionTimeout is returned when a contact-form write does not
// settle within the configured budget. The write is not compensated: one
// that has already left the client may still commit server-side.
var ErrSubmissionTimeout = errors.New("contact message submission timed out")

// MessageNotifier carries the optional side-effect targets for new contact
// messages. Either field may be nil/empty to disable that channel.
type MessageNotifier struct {
	Events     messagequeue.Publisher
	Queue      string
	Mail       *mailer.Mailer
	NotifyFrom string
	NotifyTo   string
}

// messageService implements the MessageService interface.
type messageService struct {
	messages  db.MessageRepository
	notifier  MessageNotifier
	timeout   time.Duration
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewMessageService creates a new MessageService instance. timeout bounds
// each Submit; zero or negative falls back to 10 seconds.
func NewMessageService(messages db.MessageRepository, notifier MessageNotifier, timeout time.Duration, logger *zap.Logger) MessageService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &messageService{
		messages:  messages,
		notifier:  notifier,
		timeout:   timeout,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Submit stores a contact message, racing the write against the timeout
// budget; whichever settles first wins. On success the message ID is
// returned and notification side effects run asynchronously, detached from
// the request so a slow broker or SMTP server never delays the response.
func (s *messageService) Submit(ctx context.Context, req models.ContactRequest) (string, error) {
	message := &models.Message{
		Name:    strings.TrimSpace(s.sanitizer.Sanitize(req.Name)),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(s.sanitizer.Sanitize(req.Message)),
	}
	if message.Name == "" || message.Message == "" {
		return "", errors.New("contact name and message are required")
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.messages.Create(writeCtx, message)
	if err != nil {
		if errors.Is(writeCtx.Err(), context.DeadlineExceeded) {
			s.logger.Warn("contact message write exceeded budget", zap.Duration("budget", s.timeout))
			return "", ErrSubmissionTimeout
		}
		return "", fmt.Errorf("failed to store contact message: %w", err)
	}

	s.logger.Info("contact message stored", zap.String("message", id))
	go s.notify(id, message)
	return id, nil
}

// List returns the newest messages for the admin view. Read failures
// degrade to an empty list.
func (s *messageService) List(ctx context.Context, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	messages, err := s.messages.List(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list messages", zap.Error(err))
		return []*models.Message{}, nil
	}
	return messages, nil
}

// MarkRead flips one message's read flag. Fire-and-forget: a failure is
// logged and the admin list simply shows the message unread on reload.
func (s *messageService) MarkRead(ctx context.Context, messageID string) {
	if err := s.messages.MarkRead(ctx, messageID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("mark-read for missing message", zap.String("message", messageID))
			return
		}
		s.logger.Error("failed to mark message read", zap.String("message", messageID), zap.Error(err))
	}
}

// notify publishes the new-message event and sends the owner a mail,
// whichever channels are configured. Runs on its own goroutine.
func (s *messageService) notify(id string, message *models.Message) {
	if s.notifier.Events != nil && s.notifier.Queue != "" {
		body, err := json.Marshal(map[string]string{
			"id":    id,
			"name":  message.Name,
			"email": message.Email,
		})
		if err == nil {
			if err := s.notifier.Events.Publish(s.notifier.Queue, body); err != nil {
				s.logger.Warn("failed to publish contact event", zap.String("message", id), zap.Error(err))
			}
		}
	}

	if s.notifier.Mail != nil && s.notifier.NotifyTo != "" {
		subject := fmt.Sprintf("New contact message from %s", message.Name)
		body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s", message.Name, message.Email, message.Message)
		if err := s.notifier.Mail.Send(s.notifier.NotifyTo, s.notifier.NotifyFrom, subject, body); err != nil {
			s.logger.Warn("failed to send contact notification mail", zap.String("message", id), zap.Error(err))
		}
	}
}
