package dispatch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/fatflowers/giftflow/internal/models"
)

func formatMinor(amount int64, currency string) string {
	return fmt.Sprintf("%s %d.%02d", currency, amount/100, amount%100)
}

func renderVoucherEmail(order *models.Order, vouchers []*models.VoucherCode) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Here is your %s gift voucher.</p>", html.EscapeString(brandName(order))))
	for _, v := range vouchers {
		b.WriteString(fmt.Sprintf(
			"<p>Code: <b>%s</b><br>Value: %s<br>Valid until: %s<br><a href=%q>Claim your voucher</a></p>",
			html.EscapeString(v.Code),
			formatMinor(v.OriginalValue, order.Currency),
			v.ExpiresAt.Format("2006-01-02"),
			v.ClaimURL,
		))
	}
	return b.String()
}

func renderVoucherText(order *models.Order, vouchers []*models.VoucherCode) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Your %s gift voucher:\n", brandName(order)))
	for _, v := range vouchers {
		b.WriteString(fmt.Sprintf("%s (%s, valid until %s) %s\n",
			v.Code, formatMinor(v.OriginalValue, order.Currency), v.ExpiresAt.Format("2006-01-02"), v.ClaimURL))
	}
	return b.String()
}

// renderManifestCSV produces the summary manifest: one row per voucher.
func renderManifestCSV(order *models.Order) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"code", "value", "currency", "expires_at", "claim_url"})
	for _, v := range order.Vouchers {
		_ = w.Write([]string{
			v.Code,
			strconv.FormatInt(v.OriginalValue, 10),
			order.Currency,
			v.ExpiresAt.Format("2006-01-02"),
			v.ClaimURL,
		})
	}
	w.Flush()
	return buf.Bytes()
}

func renderManifestEmail(order *models.Order, url string) string {
	return fmt.Sprintf(
		"<p>Your %s voucher manifest with %d codes is ready.</p><p><a href=%q>Download manifest</a></p>",
		html.EscapeString(brandName(order)), len(order.Vouchers), url,
	)
}
