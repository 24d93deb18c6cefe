package statsapi

import (
	"net/url"
	"strconv"
)

// PriceRow is the upstream per-item price aggregate. Min/median/max/avg
// are computed upstream from raw listings; we pass them through and
// never recompute them locally.
type PriceRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	MedianPrice float64 `json:"median_price"`
	AvgPrice    float64 `json:"avg_price"`
	Listings    int     `json:"listings"`
}

// PricesMeta describes the scan the upstream aggregates were built from.
type PricesMeta struct {
	UniqueItems          int `json:"unique_items"`
	TotalListingsScanned int `json:"total_listings_scanned"`
}

// PricesPagination carries the upstream page count for the prices resource.
// Unlike the auction endpoint, prices pages are counted upstream.
type PricesPagination struct {
	TotalPages int `json:"total_pages"`
}

// PricesPage is one page of the prices resource.
type PricesPage struct {
	Result     []PriceRow       `json:"result"`
	Meta       PricesMeta       `json:"meta"`
	Pagination PricesPagination `json:"pagination"`
}

// FetchPricesPage fetches one raw page of per-item price aggregates.
// Most callers want FetchPricesPageCached instead.
func (c *Client) FetchPricesPage(page int) (*PricesPage, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	var p PricesPage
	if err := c.getJSON("/prices", q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
