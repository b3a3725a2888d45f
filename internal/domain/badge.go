package domain

// BadgeState is the per-user notification indicator pair pushed over
// the websocket and returned by the badges endpoint.
type BadgeState struct {
	HasUnreadMessages       bool `json:"hasUnreadMessages"`
	HasPendingFriendRequest bool `json:"hasPendingFriendRequest"`
}
