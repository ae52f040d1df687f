package cart

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/leekchan/accounting"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
)

var brl = accounting.NewAccounting("R$ ", 2, ".", ",", "%s%v", "-%s%v", "%s%v")

// FormatBRL renders a value as Brazilian reais, e.g. "R$ 1.234,50".
func FormatBRL(v float64) string {
	return brl.FormatMoneyFloat64(v)
}

// CheckoutMessage renders the cart as the plain-text order sent to the
// store's WhatsApp number.
func CheckoutMessage(items []model.CartItem) string {
	var b strings.Builder
	b.WriteString("Olá! Gostaria de fazer o seguinte pedido:\n\n")

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		if item.SelectedVariant != nil {
			fmt.Fprintf(&b, "   Variação: %s\n", item.SelectedVariant.Name)
		}
		if item.IsCustom && item.CustomDetails != nil {
			for _, line := range customLines(item.CustomDetails) {
				fmt.Fprintf(&b, "   %s\n", line)
			}
		}
		fmt.Fprintf(&b, "   Quantidade: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Subtotal: %s\n", FormatBRL(LineTotal(item).Round(2).InexactFloat64()))
	}

	fmt.Fprintf(&b, "\nTotal: %s", FormatBRL(Total(items)))
	return b.String()
}

func customLines(sel *model.CustomRosarySelection) []string {
	var lines []string
	if sel.Material != nil {
		lines = append(lines, "Material: "+sel.Material.Name)
	}
	if sel.Color != nil {
		lines = append(lines, "Cor: "+sel.Color.Name)
	}
	if sel.Crucifix != nil {
		lines = append(lines, "Crucifixo: "+sel.Crucifix.Name)
	}
	if sel.Size != nil {
		lines = append(lines, "Tamanho: "+sel.Size.Name)
	}
	if sel.Medal != nil {
		lines = append(lines, "Medalha: "+sel.Medal.Name)
	}
	if sel.PersonalizationText != "" {
		lines = append(lines, "Gravação: "+sel.PersonalizationText)
	}
	return lines
}

// WhatsAppLink builds the wa.me deep link with message pre-filled. Non-digit
// characters are stripped from phone.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, text)
}
