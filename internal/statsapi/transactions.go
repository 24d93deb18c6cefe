package statsapi

import (
	"net/url"
	"strconv"
)

// Transaction is one completed auction sale.
type Transaction struct {
	Item     AuctionItem   `json:"item"`
	Price    float64       `json:"price"`
	Seller   AuctionSeller `json:"seller"`
	DateSold int64         `json:"unixMillisDateSold"`
}

// FetchTransactionsPage fetches one page of completed sales.
func (c *Client) FetchTransactionsPage(page int) ([]Transaction, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	var txns []Transaction
	if err := c.getJSON("/transactions", q, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}
