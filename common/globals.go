package common

const (
	TxTypeIncoming = "IN"
	TxTypeOutgoing = "OUT"

	CategoryTypeIncoming = "IN"
	CategoryTypeOutgoing = "OUT"
	CategoryTypeBoth     = "BOTH"

	// events published to the transaction exchange
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
)
