package checkout

import "strings"

// PaymentDetails are the seller account details shown after a method is chosen
type PaymentDetails struct {
	Bank          string
	CardNumber    string
	Recipient     string
	SupportHandle string
}

// Instructions tell the buyer where to transfer the final amount
type Instructions struct {
	Bank       string `json:"bank"`
	CardNumber string `json:"card_number"`
	// CopyValue is the raw account identifier for the clipboard
	CopyValue string `json:"copy_value"`
	Recipient string `json:"recipient"`
	Note      string `json:"note"`
}

// Instructions builds the payment instructions for d
func (d PaymentDetails) Instructions() Instructions {
	raw := digits(d.CardNumber)
	return Instructions{
		Bank:       d.Bank,
		CardNumber: groupDigits(raw, 4),
		CopyValue:  raw,
		Recipient:  d.Recipient,
		Note:       "Отправьте скриншот оплаты в поддержку " + handle(d.SupportHandle) + " для подтверждения заказа",
	}
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func groupDigits(s string, size int) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && i%size == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func handle(h string) string {
	if h == "" || strings.HasPrefix(h, "@") {
		return h
	}
	return "@" + h
}
