package cashstamp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

type claimPayload struct {
	Type      string  `json:"type"`
	Studio    string  `json:"studio"`
	AmountBCH float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
}

// Generate builds a claimable cashback stamp: an id and a QR PNG data URL
// encoding the claim payload.
func Generate(studioAddress string, amountBCH float64) (id, qrDataURL string, err error) {
	payload, err := json.Marshal(claimPayload{
		Type:      "cashstamp",
		Studio:    studioAddress,
		AmountBCH: amountBCH,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return "", "", fmt.Errorf("json.Marshal -> %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return "", "", fmt.Errorf("qrcode.Encode -> %w", err)
	}

	id = "cs_" + uuid.NewString()
	qrDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	return id, qrDataURL, nil
}
