package models

// ContentKind 文件内容类型，由文件扩展名决定
type ContentKind string

const (
	KindPDF     ContentKind = "pdf"
	KindImage   ContentKind = "image"
	KindText    ContentKind = "text"
	KindUnknown ContentKind = "unknown"
)

// DocumentClass 文档分类
type DocumentClass string

const (
	ClassInvoice  DocumentClass = "invoice"
	ClassForm     DocumentClass = "form"
	ClassContract DocumentClass = "contract"
	ClassUnknown  DocumentClass = "unknown"
)

// Route 路由决策
type Route string

const (
	RouteAutoApprove Route = "auto_approve"
	RouteHumanReview Route = "human_review"
)

// Table is one extracted tabular structure. Headers is nil when the source
// rows were ragged and no header row could be promoted; consumers must
// tolerate both shapes.
type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// Document holds everything extraction produced for one file. Immutable once
// built, one per pipeline invocation.
type Document struct {
	Path   string      `json:"path"`
	Kind   ContentKind `json:"kind"`
	Text   string      `json:"text"`
	Tables []Table     `json:"tables,omitempty"`
}

// EntityMap maps an entity label (MONEY, DATE, ...) to its matched spans in
// first-found order. Spans from different recognizer layers are concatenated,
// never deduplicated.
type EntityMap map[string][]string

// FieldMap maps a field name to its mapped value. A value may be nil when a
// pattern missed.
type FieldMap map[string]any

// ConfidenceMap maps a field name to a confidence score in [0, 1].
type ConfidenceMap map[string]float64

// FieldRule describes one schema field.
type FieldRule struct {
	Required bool `json:"required"`
}

// FieldSchema lists the expected fields for a document class.
type FieldSchema map[string]FieldRule

// Record is the final pipeline output, one per processed document.
type Record struct {
	Path               string        `json:"path"`
	Class              DocumentClass `json:"class"`
	Fields             FieldMap      `json:"fields"`
	FieldConfidence    ConfidenceMap `json:"field_confidence"`
	DocumentConfidence float64       `json:"document_confidence"`
	Valid              bool          `json:"valid"`
	Route              Route         `json:"route"`
	ProcessedAt        string        `json:"processed_at"`
}
