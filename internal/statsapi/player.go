package statsapi

import (
	"net/url"
)

// PlayerStats mirrors the upstream player stats response.
type PlayerStats struct {
	Money        float64 `json:"money"`
	Playtime     int64   `json:"playtime"` // milliseconds
	Kills        int64   `json:"kills"`
	Deaths       int64   `json:"deaths"`
	PlacedBlocks int64   `json:"placed_blocks"`
	BrokenBlocks int64   `json:"broken_blocks"`
	MobsKilled   int64   `json:"mobs_killed"`
}

// PlayerStatus is the presence/location lookup result. An empty Username
// in the upstream response means the player is offline.
type PlayerStatus struct {
	Username string `json:"username"`
	Location string `json:"location"`
	Online   bool   `json:"online"`
}

// FetchPlayerStats looks up a player's lifetime stats by username.
func (c *Client) FetchPlayerStats(username string) (*PlayerStats, error) {
	q := url.Values{"username": {username}}
	var stats PlayerStats
	if err := c.getJSON("/player", q, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchPlayerStatus looks up a player's current presence. Absence of a
// result upstream (empty username) is reported as offline, not an error.
func (c *Client) FetchPlayerStatus(username string) (*PlayerStatus, error) {
	q := url.Values{"username": {username}}
	var status PlayerStatus
	if err := c.getJSON("/player/status", q, &status); err != nil {
		return nil, err
	}
	status.Online = status.Username != ""
	return &status, nil
}
