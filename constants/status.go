package constants

// ImportStatus is the lifecycle state of an import queue item.
type ImportStatus string

// Stable values (store these exact strings in DB).
const (
	StatusPending           ImportStatus = "pending"
	StatusProcessing        ImportStatus = "processing"
	StatusNeedsConfirmation ImportStatus = "needs_confirmation"
	StatusAutoExtracted     ImportStatus = "auto_extracted" // type resolved, nothing missing
	StatusFailed            ImportStatus = "failed"
	StatusSaving            ImportStatus = "saving"
	StatusSaved             ImportStatus = "saved"
)

// ExtractionQuality is a coarse label derived from confidence or text length.
type ExtractionQuality string

const (
	QualityLow    ExtractionQuality = "low"
	QualityMedium ExtractionQuality = "medium"
	QualityHigh   ExtractionQuality = "high"
)

// RecordSource tells which path built a canonical record.
type RecordSource string

const (
	SourceDraft    RecordSource = "draft"
	SourceFallback RecordSource = "fallback"
)
