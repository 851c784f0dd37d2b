package utils

import (
	"fmt"
	"log"
	"strings"

	"github.com/k3a/html2text"
	"gopkg.in/gomail.v2"

	"shopcore/initializers"
	"shopcore/models"
)

// BuildOrderConfirmation renders the HTML body for the order confirmation
// mail.
func BuildOrderConfirmation(order *models.Order) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>Order %s confirmed</h2>", order.ID))
	b.WriteString("<table><tr><th>Item</th><th>Qty</th><th>Price</th></tr>")
	for _, it := range order.Items {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>", it.Title, it.Quantity, it.FinalPrice))
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf("<p>Total: %.2f %s</p>", order.TotalAmount, order.Currency))
	b.WriteString("</body></html>")
	return b.String()
}

// SendOrderConfirmation mails the buyer after a successful order. Mailing is
// best-effort: a delivery failure is logged, never bubbled into the request.
func SendOrderConfirmation(config *initializers.Config, to string, order *models.Order) {
	if config.SMTPHost == "" {
		return
	}

	html := BuildOrderConfirmation(order)

	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your order %s", order.ID))
	m.SetBody("text/plain", html2text.HTML2Text(html))
	m.AddAlternative("text/html", html)

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		log.Println("Could not send order confirmation: ", err)
	}
}
