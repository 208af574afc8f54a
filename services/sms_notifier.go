// services/sms_notifier.go
package services

import (
	"log"
	"os"
	"strings"
	"thevoices-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSNotifier sends reminders over Twilio SMS for users who registered a
// phone number, and always writes the in-app notification through the base
// notifier so the dashboard inbox stays complete either way.
type SMSNotifier struct {
	client *twilio.RestClient
	from   string
	base   Notifier
}

func NewSMSNotifier(base Notifier) *SMSNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &SMSNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_PHONE_NUMBER"),
		base: base,
	}
}

// SMSEnabled reports whether Twilio credentials are configured.
func SMSEnabled() bool {
	return os.Getenv("TWILIO_ACCOUNT_SID") != "" && os.Getenv("TWILIO_AUTH_TOKEN") != ""
}

func (n *SMSNotifier) Notify(user *models.User, message string, link string) error {
	if err := n.base.Notify(user, message, link); err != nil {
		return err
	}

	if strings.TrimSpace(user.Phone) == "" {
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetBody(message)
	params.SetFrom(n.from)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		// SMS is best-effort on top of the in-app notification.
		log.Printf("Failed to send SMS to %s: %v", user.Phone, err)
		return nil
	}
	if resp.Sid != nil {
		log.Printf("SMS reminder sent to %s, SID: %s", user.Phone, *resp.Sid)
	} else {
		log.Printf("SMS reminder sent to %s, but no SID returned", user.Phone)
	}
	return nil
}
