package schema

// HostReviewTable represents the 'host.review' table
type HostReviewTable struct {
	Table      string
	ID         string
	HostID     string
	Rating     string
	Name       string
	Text       string
	OccurredAt string
}

// HostReview is the schema definition for host.review
var HostReview = HostReviewTable{
	Table:      "host.review",
	ID:         "id",
	HostID:     "hostid",
	Rating:     "rating",
	Name:       "name",
	Text:       "text",
	OccurredAt: "occurredat",
}
