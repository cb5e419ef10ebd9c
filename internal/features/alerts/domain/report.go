package domain

import (
	"fmt"
	"time"

	inventory "stock-tracker/internal/features/inventory/domain"
)

// Trigger names the entry point that started a check.
type Trigger string

const (
	TriggerCLI   Trigger = "cli"
	TriggerHTTP  Trigger = "http"
	TriggerQueue Trigger = "queue"
)

// TestModeSKU identifies the synthetic record injected in test mode.
const TestModeSKU = "TEST-MODE-SKU"

// SyntheticRecord returns a record that is always available through both channels.
func SyntheticRecord() inventory.Availability {
	return inventory.Availability{
		SKU:      TestModeSKU,
		SellerID: "test",
		Shipping: inventory.Shipping{
			Status:            inventory.ShippingStatusInStock,
			Purchasable:       true,
			QuantityRemaining: 1,
		},
		Pickup: inventory.Pickup{
			Status:      inventory.PickupStatusInStock,
			Purchasable: true,
			Locations: []inventory.Location{
				{Name: "Test Store", LocationKey: "0", QuantityOnHand: 1, HasInventory: true},
			},
		},
	}
}

// RunReport summarizes one unattended check.
type RunReport struct {
	RunID      string    `json:"runId"`
	Trigger    Trigger   `json:"trigger"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	TestMode   bool      `json:"testMode"`
	// Checked is the number of records evaluated, including the synthetic one.
	Checked int `json:"checked"`
	// Items is the number of available records.
	Items int `json:"items"`
	// AvailableSKUs lists the SKUs with stock, in batch order.
	AvailableSKUs []string `json:"availableSkus,omitempty"`
	Sent          bool     `json:"sent"`
	// MailSkipped is set when no mail credentials are configured.
	MailSkipped   bool   `json:"mailSkipped,omitempty"`
	DeliveryError string `json:"deliveryError,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Success reports whether the inventory check itself succeeded. Delivery
// failures do not count against it.
func (r RunReport) Success() bool {
	return r.Error == ""
}

// DeliveryError wraps a mail transport failure.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver stock alert: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
