package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type FloorFeed interface {
	GetFloor(ctx context.Context, collection string) (float64, error)
}

// CoinGeckoFeed implements FloorFeed using the public CoinGecko NFT API.
// The collection argument is the CoinGecko nft id (e.g. "pudgy-penguins").
type CoinGeckoFeed struct {
	client  *http.Client
	baseURL string
}

// NewCoinGeckoFeed returns a new CoinGecko-based floor price feed.
func NewCoinGeckoFeed() *CoinGeckoFeed {
	return &CoinGeckoFeed{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://api.coingecko.com/api/v3",
	}
}

type cgNFTResponse struct {
	FloorPrice struct {
		USD float64 `json:"usd"`
	} `json:"floor_price"`
}

// GetFloor returns the collection floor price in USD.
func (f *CoinGeckoFeed) GetFloor(ctx context.Context, collection string) (float64, error) {
	url := fmt.Sprintf("%s/nfts/%s", f.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	var body cgNFTResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	if body.FloorPrice.USD == 0 {
		return 0, fmt.Errorf("coingecko: no floor price for %s", collection)
	}

	return body.FloorPrice.USD, nil
}
