package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	inventory "stock-tracker/internal/features/inventory/domain"
)

// Report is the "email report" of the current snapshot, meant to be opened in
// the user's own mail client.
type Report struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}

const reportSeparator = "\n--------------------------------\n\n"

// BuildReport renders the report for a batch at the given time.
func BuildReport(records []inventory.Availability, productURLBase string, at time.Time) Report {
	subject := "BestBuy Stock Report - " + at.Format("15:04:05")

	lines := make([]string, len(records))
	for i, r := range records {
		status := "Out of Stock"
		if inventory.Evaluate(r).Any() {
			status = "IN STOCK"
		}
		lines[i] = fmt.Sprintf("SKU: %s\nStatus: %s\nLink: %s%s\n", r.SKU, status, productURLBase, r.SKU)
	}

	body := fmt.Sprintf("Current Inventory Status (%s):\n\n%s",
		at.Format("2006-01-02 15:04:05"),
		strings.Join(lines, reportSeparator),
	)

	return Report{
		Subject: subject,
		Body:    body,
		Mailto:  "mailto:?subject=" + escapeComponent(subject) + "&body=" + escapeComponent(body),
	}
}

// escapeComponent percent-encodes s for a mailto header field, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
