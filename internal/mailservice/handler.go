package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/quillpost/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, users RecipientLookup, host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, NewTemplate()),
		users:      users,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
	}
}

// StartNotifications consumes the engagement queues and mails the affected user for every event.
func (s *MailService) StartNotifications() error {
	handlers := []struct {
		key    common.BindingKey
		queue  common.Queue
		handle func(body []byte) (*notification, error)
	}{
		{common.CommentCreatedKey, common.CommentCreatedQueue, s.commentCreated},
		{common.UserFollowedKey, common.UserFollowedQueue, s.userFollowed},
	}

	for _, h := range handlers {
		msgs, err := s.mb.Consume(h.key, common.EngagementExchange, h.queue)
		if err != nil {
			s.logger.Error("could not consume message", slog.String("queue", string(h.queue)), slog.String("error", err.Error()))
			return err
		}

		s.wg.Add(1)
		go s.consume(string(h.queue), msgs, h.handle)
	}

	return nil
}

func (s *MailService) consume(queue string, msgs <-chan amqp.Delivery, handle func(body []byte) (*notification, error)) {
	defer s.wg.Done()

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			n, err := handle(msg.Body)
			if err != nil {
				s.logger.Error("could not handle message", slog.String("queue", queue), slog.String("error", err.Error()))
				msg.Ack(false)
				continue
			}

			if n != nil {
				s.deliver(n)
			}
			msg.Ack(false)

		case <-s.ctx.Done():
			s.logger.Info("stopping notifications due to context cancellation", slog.String("queue", queue))
			return
		}
	}
}

// deliver sends n, retrying with exponential backoff and full jitter.
func (s *MailService) deliver(n *notification) {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(n.recipient, n.data, n.template)
		if err == nil {
			s.logger.Info("notification sent", slog.String("email", n.recipient), slog.String("template", n.template))
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying notification", slog.String("email", n.recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send notification", slog.String("email", n.recipient), slog.String("template", n.template))
}

func (s *MailService) commentCreated(body []byte) (*notification, error) {
	var e common.CommentCreatedEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, err
	}

	// no mail for comments on your own blog
	if e.AuthorID == e.UserID {
		return nil, nil
	}

	email, name, err := s.users.LookupRecipient(s.ctx, e.AuthorID)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, nil
	}

	_, commenter, err := s.users.LookupRecipient(s.ctx, e.UserID)
	if err != nil {
		return nil, err
	}

	return &notification{
		recipient: email,
		template:  commentTemplate,
		data: commentNotification{
			RecipientName: name,
			CommenterName: commenter,
			BlogID:        e.BlogID,
			Comment:       e.Comment,
		},
	}, nil
}

func (s *MailService) userFollowed(body []byte) (*notification, error) {
	var e common.UserFollowedEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, err
	}

	email, name, err := s.users.LookupRecipient(s.ctx, e.FollowingID)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, nil
	}

	_, follower, err := s.users.LookupRecipient(s.ctx, e.FollowerID)
	if err != nil {
		return nil, err
	}

	return &notification{
		recipient: email,
		template:  followerTemplate,
		data: followerNotification{
			RecipientName: name,
			FollowerName:  follower,
			FollowerID:    e.FollowerID,
		},
	}, nil
}

// Close stops the consumers and waits for in-flight deliveries to return.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
