package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/dancecash/dancecash-api/internal/config"
	"github.com/dancecash/dancecash-api/internal/wallet"
)

var ErrNotConfigured = fmt.Errorf("email service is not configured")

type Mailer struct {
	client    *mailersend.Mailersend
	fromName  string
	fromEmail string
	network   string
}

func NewMailer(conf *config.EmailConfig, network string) *Mailer {
	var client *mailersend.Mailersend
	if conf.MailerSendAPIKey != "" {
		client = mailersend.NewMailersend(conf.MailerSendAPIKey)
	}

	return &Mailer{
		client:    client,
		fromName:  conf.FromName,
		fromEmail: conf.FromEmail,
		network:   network,
	}
}

type Confirmation struct {
	To            string
	AttendeeName  string
	EventName     string
	EventDate     time.Time
	EventTime     string
	EventLocation string
	NFTTxID       string
}

// SendConfirmation sends the booking confirmation with an explorer link to
// the minted ticket. Missing configuration is an error the caller logs and
// tolerates, mirroring the rest of the settlement sequence.
func (m *Mailer) SendConfirmation(ctx context.Context, c Confirmation) error {
	if m.client == nil {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	from := mailersend.From{
		Name:  m.fromName,
		Email: m.fromEmail,
	}

	recipients := []mailersend.Recipient{
		{
			Name:  c.AttendeeName,
			Email: c.To,
		},
	}

	message := m.client.Email.NewMessage()
	message.SetFrom(from)
	message.SetRecipients(recipients)
	message.SetSubject(fmt.Sprintf("Ticket Confirmation: %v", c.EventName))
	message.SetHTML(m.renderHTML(c))
	message.SetText(m.renderText(c))

	if _, err := m.client.Email.Send(ctx, message); err != nil {
		return fmt.Errorf("m.client.Email.Send -> %w", err)
	}

	return nil
}

func (m *Mailer) renderHTML(c Confirmation) string {
	ticketSection := ""
	if c.NFTTxID != "" {
		ticketSection = fmt.Sprintf(`<p>Your ticket has been minted as an NFT on the Bitcoin Cash blockchain.
<a href="%v">View it on the block explorer</a>.</p>`, wallet.ExplorerTxURL(m.network, c.NFTTxID))
	}

	return fmt.Sprintf(`<html><body>
<h1>You're all set!</h1>
<p>Hi %v,</p>
<p>Thank you for booking with Dance.cash. Your payment has been confirmed.</p>
<h2>%v</h2>
<ul>
  <li>Date: %v</li>
  <li>Time: %v</li>
  <li>Location: %v</li>
</ul>
%v
<p>We're excited to see you at the event!</p>
<p>The Dance.cash Team</p>
</body></html>`,
		c.AttendeeName,
		c.EventName,
		c.EventDate.Format("Monday, January 2, 2006"),
		c.EventTime,
		c.EventLocation,
		ticketSection,
	)
}

func (m *Mailer) renderText(c Confirmation) string {
	text := fmt.Sprintf("Hi %v,\n\nYour booking for %v on %v (%v) at %v is confirmed.\n",
		c.AttendeeName, c.EventName, c.EventDate.Format("2006-01-02"), c.EventTime, c.EventLocation)
	if c.NFTTxID != "" {
		text += fmt.Sprintf("\nYour NFT ticket: %v\n", wallet.ExplorerTxURL(m.network, c.NFTTxID))
	}

	return text
}
