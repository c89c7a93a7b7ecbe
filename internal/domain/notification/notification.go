package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grynvault-backend/internal/domain/order"
)

// Message is one templated email.
type Message struct {
	TemplateID string
	Recipient  string
	Fields     map[string]string
}

// Notifier delivers messages. Callers do not retry.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

const AcceptanceTitle = "Someone Accepted Loan Request"

// AcceptanceMessage tells the desk that a visitor accepted an order from the book.
func AcceptanceMessage(templateID string, o order.Order, name, email string, now time.Time) Message {
	return Message{
		TemplateID: templateID,
		Recipient:  email,
		Fields: map[string]string{
			"title":   AcceptanceTitle,
			"name":    name,
			"email":   email,
			"time":    now.UTC().Format(time.RFC1123),
			"message": orderDetails(o),
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orderDetails(o order.Order) string {
	custody := "Self"
	if o.ThirdPartyCustody {
		custody = "Third Party"
	}
	chain := "L1"
	if o.BTCChain != "" && string(o.BTCChain) != "L1" {
		chain = "Bridged"
	}

	var b strings.Builder
	b.WriteString("Request Details:\n")
	fmt.Fprintf(&b, "ID %s\n", o.ID)
	fmt.Fprintf(&b, "Amount: %s\n", groupThousands(o.Amount))
	fmt.Fprintf(&b, "Custody: %s\n", custody)
	fmt.Fprintf(&b, "KYC Required: %s\n", yesNo(o.KYCRequired))
	fmt.Fprintf(&b, "LTV: %d%%\n", o.LTV)
	fmt.Fprintf(&b, "Term: %d days\n", o.TermDays)
	fmt.Fprintf(&b, "Liquidation Risk: %s\n", yesNo(o.LiquidationRisk))
	fmt.Fprintf(&b, "BTC Chain: %s\n", chain)
	fmt.Fprintf(&b, "Wallet Type: %s\n", o.WalletType)
	fmt.Fprintf(&b, "Currency: %s\n", o.Currency)
	fmt.Fprintf(&b, "APR: %g%%\n", o.APR)
	return b.String()
}

// groupThousands renders 1234567.5 as "1,234,567.5".
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var out []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	res := string(out)
	if neg {
		res = "-" + res
	}
	if frac != "" {
		res += "." + frac
	}
	return res
}
