package domain

// DeliveryMode selects how the gateway moves mail: over SMTP or into the log.
type DeliveryMode string

const (
	// DeliveryModeLive sends over a verified SMTP connection.
	DeliveryModeLive DeliveryMode = "live"

	// DeliveryModeSimulated logs structured message details instead of
	// contacting any network service. Chosen automatically when credentials
	// are absent, placeholders, or unverifiable.
	DeliveryModeSimulated DeliveryMode = "simulated"
)

// DeliveryResult is the outcome of one send operation. Send operations never
// return errors; every failure is folded into Success=false with a message.
type DeliveryResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ReferenceID string `json:"referenceId,omitempty"`
	Recipient   string `json:"recipient,omitempty"`
	Subject     string `json:"subject,omitempty"`
	TestMode    bool   `json:"testMode"`
}
