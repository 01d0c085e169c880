package services

import (
	"fmt"
	"html/template"
	"log"
	"time"

	"partner-portal-api/config"
	"partner-portal-api/models"

	"github.com/cenkalti/backoff"
)

// CredentialNotifier delivers a freshly generated credential to the
// organization's contact address. Delivery is best-effort: the credential
// change it accompanies must never be rolled back because mail failed.
type CredentialNotifier interface {
	SendCredential(org models.Organization, plaintext string)
}

// Notifier sends credential mail through the configured SMTP relay,
// asynchronously and with exponential-backoff retries. No transaction or lock
// is held while a send is in flight.
type Notifier struct {
	send func(to []string, subject, html string) error
}

func NewNotifier() *Notifier {
	return &Notifier{send: config.SendMail}
}

func (n *Notifier) SendCredential(org models.Organization, plaintext string) {
	if org.ContactEmail == "" {
		log.Printf("credential notification skipped for %s: no contact email", org.OrgID)
		return
	}

	subject := "Your partner portal access"
	html := fmt.Sprintf(`<p>Hello %s,</p>
<p>An access credential was generated for your organization account <strong>%s</strong>.</p>
<p>Organization ID: <strong>%s</strong><br />Password: <strong>%s</strong></p>
<p>Please sign in and change this password as soon as possible.</p>`,
		template.HTMLEscapeString(org.OrgNameFull),
		template.HTMLEscapeString(org.OrgName),
		template.HTMLEscapeString(org.OrgID),
		template.HTMLEscapeString(plaintext),
	)

	go func() {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 2 * time.Second
		bo.MaxElapsedTime = 2 * time.Minute

		err := backoff.Retry(func() error {
			return n.send([]string{org.ContactEmail}, subject, html)
		}, bo)
		if err != nil {
			log.Printf("Warning: credential notification to %s failed: %v", org.OrgID, err)
		}
	}()
}
