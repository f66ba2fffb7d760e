package notify

import (
	"fmt"
	"html"
)

// Templates builds the storefront's outbound emails. From addresses come from
// config so staging never mails customers from the production identity.
type Templates struct {
	From          string
	BusinessEmail string
	BaseURL       string
}

func (t Templates) OrderConfirmation(to, userName string, quantity int64, tier string, totalCents int64) Email {
	name := html.EscapeString(userName)
	if name == "" {
		name = "there"
	}

	body := fmt.Sprintf(
		`<h2>Thanks for your order!</h2>
<p>Hi %s,</p>
<p>We received your payment for <strong>%d</strong> Force Dowels (%s) totaling <strong>$%.2f</strong>.</p>
<p>We'll email tracking details once your order ships.</p>`,
		name, quantity, html.EscapeString(tier), float64(totalCents)/100,
	)

	return Email{
		From:    t.From,
		To:      []string{to},
		Subject: "Your Force Dowels order is confirmed",
		HTML:    body,
	}
}

func (t Templates) DistributorApplicationReceived(to, fullName string) Email {
	body := fmt.Sprintf(
		`<h2>Application received</h2>
<p>Hi %s,</p>
<p>Thanks for applying to become a Force Dowels distributor. We review every application and will be in touch shortly.</p>`,
		html.EscapeString(fullName),
	)

	return Email{
		From:    t.From,
		To:      []string{to},
		Subject: "We received your distributor application",
		HTML:    body,
	}
}

// DistributorApplicationNotice goes to the business with accept/decline links
// keyed on the request's unguessable id.
func (t Templates) DistributorApplicationNotice(businessName, fullName, email, territory, uniqueID string) Email {
	body := fmt.Sprintf(
		`<h2>New distributor application</h2>
<p><strong>Business:</strong> %s<br>
<strong>Contact:</strong> %s (%s)<br>
<strong>Territory:</strong> %s</p>
<p><a href="%s/distribution/accept/%s">Accept</a> &middot; <a href="%s/distribution/decline/%s">Decline</a></p>`,
		html.EscapeString(businessName), html.EscapeString(fullName),
		html.EscapeString(email), html.EscapeString(territory),
		t.BaseURL, uniqueID, t.BaseURL, uniqueID,
	)

	return Email{
		From:    t.From,
		To:      []string{t.BusinessEmail},
		ReplyTo: email,
		Subject: fmt.Sprintf("Distributor application: %s", businessName),
		HTML:    body,
	}
}

func (t Templates) DistributorAccepted(to, businessName string) Email {
	body := fmt.Sprintf(
		`<h2>Welcome aboard!</h2>
<p>Your distributor application for <strong>%s</strong> has been accepted. Our team will reach out with onboarding details.</p>`,
		html.EscapeString(businessName),
	)

	return Email{
		From:    t.From,
		To:      []string{to},
		Subject: "Your distributor application was accepted",
		HTML:    body,
	}
}

func (t Templates) DistributorDeclined(to, businessName string) Email {
	body := fmt.Sprintf(
		`<p>Thank you for your interest in distributing Force Dowels. After review, we're unable to move forward with <strong>%s</strong> at this time.</p>`,
		html.EscapeString(businessName),
	)

	return Email{
		From:    t.From,
		To:      []string{to},
		Subject: "Update on your distributor application",
		HTML:    body,
	}
}
