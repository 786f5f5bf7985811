package donation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDonor is used when the payload carries no donor name.
const DefaultDonor = "Anonim"

// Payload is one inbound donation event after field aliasing. Zero values
// mean "absent"; Normalize applies the defaults.
type Payload struct {
	ID      string
	Donator string
	Amount  int64
	Message string
	Media   string
}

type rawPayload struct {
	ID          json.RawMessage `json:"id"`
	Donator     *string         `json:"donator"`
	DonatorName *string         `json:"donator_name"`
	Amount      json.RawMessage `json:"amount"`
	AmountRaw   json.RawMessage `json:"amount_raw"`
	Message     *string         `json:"message"`
	Media       json.RawMessage `json:"media"`
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	var raw rawPayload
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*p = Payload{
		ID:      scalarString(raw.ID),
		Donator: firstString(raw.Donator, raw.DonatorName),
		Message: firstString(raw.Message),
		Media:   mediaURL(raw.Media),
	}
	amount := raw.Amount
	if isNull(amount) {
		amount = raw.AmountRaw
	}
	p.Amount = parseAmount(amount)
	return nil
}

// ParsePayloads accepts a single event object or an array of them.
func ParsePayloads(data []byte) ([]Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	if trimmed[0] == '[' {
		var list []Payload
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode payload list: %w", err)
		}
		return list, nil
	}
	var p Payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return []Payload{p}, nil
}

// Normalize fills defaults and returns the donation record plus the media URL.
func (p Payload) Normalize() (models.Donation, string) {
	d := models.Donation{
		ID:        strings.TrimSpace(p.ID),
		DonorName: strings.TrimSpace(p.Donator),
		Amount:    p.Amount,
		Message:   strings.TrimSpace(p.Message),
	}
	if d.ID == "" {
		d.ID = newID()
	}
	if d.DonorName == "" {
		d.DonorName = DefaultDonor
	}
	if d.Amount < 0 {
		d.Amount = 0
	}
	return d, strings.TrimSpace(p.Media)
}

// newID is time ordered so synthesized ids sort by arrival.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func isNull(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}

// scalarString reads a JSON string or number as text.
func scalarString(b json.RawMessage) string {
	if isNull(b) {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		return n.String()
	}
	return ""
}

// parseAmount accepts a number or numeric string. Fractions are truncated,
// negatives and garbage become 0.
func parseAmount(b json.RawMessage) int64 {
	s := strings.TrimSpace(scalarString(b))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	d = d.Truncate(0)
	if d.IsNegative() {
		return 0
	}
	return d.IntPart()
}

func mediaURL(b json.RawMessage) string {
	if isNull(b) {
		return ""
	}
	var obj struct {
		Src string `json:"src"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		return obj.Src
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	return ""
}
