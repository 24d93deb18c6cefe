package statsapi

import (
	"net/url"
	"strconv"
)

// AuctionItem describes the item attached to an auction listing.
type AuctionItem struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Count       int      `json:"count"`
	Enchants    []string `json:"enchants,omitempty"`
	Lore        []string `json:"lore,omitempty"`
	Contents    []string `json:"contents,omitempty"`
}

// AuctionSeller identifies the player behind a listing.
type AuctionSeller struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// AuctionListing is one active auction-house entry.
type AuctionListing struct {
	Item     AuctionItem   `json:"item"`
	Price    float64       `json:"price"`
	Seller   AuctionSeller `json:"seller"`
	TimeLeft int64         `json:"time_left"` // milliseconds
}

// FetchAuctionPage fetches one page of auction listings. The endpoint
// exposes no total-count field; an empty page is the only terminal
// signal and is a valid result, not an error.
func (c *Client) FetchAuctionPage(page int, search, sortKey string) ([]AuctionListing, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	if search != "" {
		q.Set("search", search)
	}
	if sortKey != "" {
		q.Set("sort", sortKey)
	}
	var listings []AuctionListing
	if err := c.getJSON("/auction", q, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
