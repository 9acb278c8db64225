package ir

import "time"

const Version = "1.0"

// Kind classifies a scanned document.
type Kind string

const (
	KindMarkdown  Kind = "markdown"
	KindChangelog Kind = "changelog"
	KindBash      Kind = "bash"
	KindRust      Kind = "rust"
	KindSwift     Kind = "swift"
	KindCommit    Kind = "commit"
	KindText      Kind = "text"
)

type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context    Context     `json:"context"`
	Documents  []Document  `json:"documents"`
	Violations []Violation `json:"violations,omitempty"`
}

type Context struct {
	SeverityThreshold string   `json:"severity_threshold,omitempty"`
	DisabledRules     []string `json:"disabled_rules,omitempty"`
	SubjectLimit      int      `json:"subject_limit,omitempty"`
	WrapColumn        int      `json:"wrap_column,omitempty"`
	WaivedCount       int      `json:"waived_count,omitempty"`
}

// Document is one classified input file with its extracted structure.
type Document struct {
	Path     string    `json:"path"`
	Kind     Kind      `json:"kind"`
	Lines    []Line    `json:"lines"`
	Links    []Link    `json:"links,omitempty"`
	Fences   []Fence   `json:"fences,omitempty"`
	Headings []Heading `json:"headings,omitempty"`

	Annotations Anno `json:"annotations"`
}

type Line struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Link is a markdown link target (inline or reference definition).
type Link struct {
	Line   int    `json:"line"`
	Target string `json:"target"`
}

// Fence is a fenced code block. Lang is empty when the opening fence
// carries no language tag.
type Fence struct {
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line,omitempty"`
	Lang      string `json:"lang,omitempty"`
	Closed    bool   `json:"closed"`
}

type Heading struct {
	Line  int    `json:"line"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Anno struct {
	Stats Stats `json:"stats,omitempty"`
}

// Stats are per-document scan metrics surfaced in reports.
type Stats struct {
	LineCount  int `json:"line_count,omitempty"`
	WordCount  int `json:"word_count,omitempty"`
	FenceCount int `json:"fence_count,omitempty"`
	LinkCount  int `json:"link_count,omitempty"`
}

type Violation struct {
	ID       string         `json:"id"`
	Path     string         `json:"path"`
	Line     int            `json:"line,omitempty"`
	RuleID   string         `json:"rule_id"`
	Kind     string         `json:"kind"`     // STYLE|STRUCTURE
	Severity string         `json:"severity"` // LOW|MEDIUM|HIGH
	Message  string         `json:"message"`
	Evidence string         `json:"evidence,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
