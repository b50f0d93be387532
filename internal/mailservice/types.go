package mailservice

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/quillpost/internal/common"
)

const (
	commentTemplate  = "comment_notification.html"
	followerTemplate = "follower_notification.html"
)

type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	users  RecipientLookup
	logger MailLogger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	maxRetries int
	baseDelay  time.Duration
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// RecipientLookup resolves an internal user id to the address and display name mail is sent to.
type RecipientLookup interface {
	LookupRecipient(ctx context.Context, userID int) (email string, name string, err error)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

type commentNotification struct {
	RecipientName string
	CommenterName string
	BlogID        int
	Comment       string
}

type followerNotification struct {
	RecipientName string
	FollowerName  string
	FollowerID    int
}

// notification is a rendered-but-unsent mail: who gets it, which template and the template data.
type notification struct {
	recipient string
	template  string
	data      any
}
