package domain

// Table is a mongo collection name
type Table string

const (
	TableAuctionEvents Table = "auction_events"
)
