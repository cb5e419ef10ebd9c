package domain

import (
	"bytes"
	"fmt"
	"html/template"

	inventory "stock-tracker/internal/features/inventory/domain"
)

// Item is one record as it appears in a stock alert.
type Item struct {
	SKU      string `json:"sku"`
	Shipping bool   `json:"shipping"`
	Pickup   bool   `json:"pickup"`
	URL      string `json:"url"`
}

// Available reports whether the item can be bought through any channel.
func (i Item) Available() bool {
	return i.Shipping || i.Pickup
}

// Message is a composed stock alert, ready for a Mailer.
type Message struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	// Items holds every record of the batch, available or not.
	Items []Item `json:"items"`
	// Available is the number of items with stock.
	Available int `json:"available"`
}

// ProductURL returns the storefront link for a SKU.
func ProductURL(base, sku string) string {
	return base + sku + "/" + sku
}

var alertTemplate = template.Must(template.New("alert").Parse(`<h2>Stock Detected!</h2>
<p>The following items were checked:</p>
{{range .}}<div style="border: 1px solid #ccc; padding: 10px; margin-bottom: 10px; border-radius: 5px;">
  <h3 style="margin: 0;">SKU: {{.SKU}}</h3>
  <p><strong>Shipping:</strong> {{if .Shipping}}&#9989; Available{{else}}&#10060; Out of Stock{{end}}</p>
  <p><strong>Pickup:</strong> {{if .Pickup}}&#9989; Available{{else}}&#10060; Out of Stock{{end}}</p>
  <a href="{{.URL}}" style="background-color: #0046be; color: white; padding: 5px 10px; text-decoration: none; border-radius: 3px; display: inline-block; margin-top: 5px;">Buy Now</a>
</div>
{{end}}<p style="font-size: 12px; color: #666;">This check ran unattended.</p>
`))

// Compose builds the stock alert for a batch. It returns nil when nothing in
// the batch is available.
func Compose(records []inventory.Availability, productURLBase string) (*Message, error) {
	if !inventory.BatchHasStock(records) {
		return nil, nil
	}

	decisions := inventory.EvaluateAll(records)
	items := make([]Item, len(records))
	available := 0
	for i, r := range records {
		items[i] = Item{
			SKU:      r.SKU,
			Shipping: decisions[i].Shipping,
			Pickup:   decisions[i].Pickup,
			URL:      ProductURL(productURLBase, r.SKU),
		}
		if decisions[i].Any() {
			available++
		}
	}

	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, items); err != nil {
		return nil, fmt.Errorf("failed to render alert: %w", err)
	}

	return &Message{
		Subject:   fmt.Sprintf("STOCK ALERT: %d Item(s) Available!", available),
		HTML:      buf.String(),
		Items:     items,
		Available: available,
	}, nil
}
