package schema

// HostTransactionTable represents the 'host.transaction' table
type HostTransactionTable struct {
	Table      string
	ID         string
	HostID     string
	Amount     string
	OccurredAt string
}

// HostTransaction is the schema definition for host.transaction
var HostTransaction = HostTransactionTable{
	Table:      "host.transaction",
	ID:         "id",
	HostID:     "hostid",
	Amount:     "amount",
	OccurredAt: "occurredat",
}
