package constants

// ProcessingStatus is the canonical status for processed-document history rows.
type ProcessingStatus string

// Stable values (store these exact strings in DB).
const (
	StatusProcessed ProcessingStatus = "PROCESSED" // pipeline completed, totals reconciled
	StatusImported  ProcessingStatus = "IMPORTED"  // ledger entries created from the document
)
