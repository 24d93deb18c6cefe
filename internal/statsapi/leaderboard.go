package statsapi

import (
	"net/url"
	"strconv"
)

// LeaderboardRow is one ranked entry of a leaderboard page.
type LeaderboardRow struct {
	Username string  `json:"username"`
	Value    float64 `json:"value"`
}

// FetchLeaderboardPage fetches one raw page of a leaderboard category.
// Raw pages are 45 entries and consecutive pages share one boundary
// entry; de-duplication is the engine's job, not the client's.
func (c *Client) FetchLeaderboardPage(category string, page int) ([]LeaderboardRow, error) {
	q := url.Values{
		"type": {category},
		"page": {strconv.Itoa(page)},
	}
	var rows []LeaderboardRow
	if err := c.getJSON("/leaderboard", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
