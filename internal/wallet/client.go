package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a mainnet.cash REST gateway, which fronts the same wallet
// library the rest of the BCH ecosystem uses. All chain work (UTXO
// selection, CashToken genesis, fee handling) happens behind the gateway;
// this client only shuttles wallet IDs and amounts.
type Client struct {
	baseURL    string
	network    string
	httpClient *http.Client
}

func NewClient(baseURL, network string) *Client {
	return &Client{
		baseURL: baseURL,
		network: network,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type balanceRequest struct {
	WalletID string `json:"walletId"`
}

type balanceResponse struct {
	BCH float64 `json:"bch"`
	Sat int64   `json:"sat"`
}

// Balance returns the BCH balance of an address via a watch-only wallet.
func (c *Client) Balance(ctx context.Context, address string) (float64, error) {
	req := balanceRequest{
		WalletID: fmt.Sprintf("watch:%v:%v", restNetwork(c.network), address),
	}

	var resp balanceResponse
	if err := c.post(ctx, "/wallet/balance", req, &resp); err != nil {
		return 0, fmt.Errorf("c.post -> %w", err)
	}

	return resp.BCH, nil
}

type tokenGenesisRequest struct {
	WalletID   string `json:"walletId"`
	Cashaddr   string `json:"cashaddr"`
	Amount     uint64 `json:"amount"`
	Value      uint64 `json:"value"`
	Capability string `json:"capability"`
	Commitment string `json:"commitment"`
}

type tokenGenesisResponse struct {
	TxID     string   `json:"txId"`
	TokenIDs []string `json:"tokenIds"`
}

// MintTicket creates an immutable NFT at the destination address. The
// commitment is a hex string and must already respect the 40-byte cap.
func (c *Client) MintTicket(ctx context.Context, wif, destination, commitment string) (string, error) {
	req := tokenGenesisRequest{
		WalletID:   fmt.Sprintf("wif:%v:%v", restNetwork(c.network), wif),
		Cashaddr:   destination,
		Amount:     1,
		Value:      1000,
		Capability: "none",
		Commitment: commitment,
	}

	var resp tokenGenesisResponse
	if err := c.post(ctx, "/wallet/token_genesis", req, &resp); err != nil {
		return "", fmt.Errorf("c.post -> %w", err)
	}

	if resp.TxID != "" {
		return resp.TxID, nil
	}
	if len(resp.TokenIDs) > 0 {
		return resp.TokenIDs[0], nil
	}

	return "", fmt.Errorf("token genesis returned no transaction id")
}

type sendMaxRequest struct {
	WalletID string `json:"walletId"`
	Cashaddr string `json:"cashaddr"`
}

type sendMaxResponse struct {
	TxID string `json:"txId"`
}

// Sweep forwards the full remaining balance of the child key to the payout
// address.
func (c *Client) Sweep(ctx context.Context, wif, payoutAddress string) (string, error) {
	req := sendMaxRequest{
		WalletID: fmt.Sprintf("wif:%v:%v", restNetwork(c.network), wif),
		Cashaddr: payoutAddress,
	}

	var resp sendMaxResponse
	if err := c.post(ctx, "/wallet/send_max", req, &resp); err != nil {
		return "", fmt.Errorf("c.post -> %w", err)
	}

	return resp.TxID, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("c.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("io.ReadAll -> %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wallet gateway %v returned %v: %s", path, resp.StatusCode, raw)
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return nil
}
