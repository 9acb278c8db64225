package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/mullvad/guidelint/internal/ir"
	"github.com/mullvad/guidelint/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID       string `yaml:"id"`
	Summary  string `yaml:"summary"`
	Kind     string `yaml:"kind"`     // STYLE|STRUCTURE
	Severity string `yaml:"severity"` // LOW|MEDIUM|HIGH
	Message  string `yaml:"message"`

	Where struct {
		PathGlob     string `yaml:"path_glob"`      // e.g. "docs/**/*.md"
		DocKind      string `yaml:"kind"`           // markdown|bash|rust|swift|commit|changelog|text
		LineRegex    string `yaml:"line_regex"`     // violation when a line matches
		NotLineRegex string `yaml:"not_line_regex"` // violation when NO line matches (document-level)
	} `yaml:"where"`
}

type compiled struct {
	rule     dslRule
	pathGlob glob.Glob
	docKind  ir.Kind
	reLine   *regexp.Regexp
	reAbsent *regexp.Regexp
}

// LoadAndRegister reads a YAML rule pack and registers every rule into the
// shared registry. Returns the number of rules registered.
func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rules pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		registerCompiled(*cr)
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Severity == "" || r.Message == "" {
		return nil, fmt.Errorf("missing required fields (id/severity/message)")
	}
	if r.Where.LineRegex != "" && r.Where.NotLineRegex != "" {
		return nil, fmt.Errorf("line_regex and not_line_regex are mutually exclusive")
	}
	if r.Where.LineRegex == "" && r.Where.NotLineRegex == "" {
		return nil, fmt.Errorf("one of line_regex or not_line_regex is required")
	}
	c := &compiled{rule: r, docKind: ir.Kind(strings.ToLower(strings.TrimSpace(r.Where.DocKind)))}
	if r.Where.PathGlob != "" {
		g, err := glob.Compile(r.Where.PathGlob, '/')
		if err != nil {
			return nil, fmt.Errorf("path_glob: %w", err)
		}
		c.pathGlob = g
	}
	if r.Where.LineRegex != "" {
		re, err := regexp.Compile("(?i)" + r.Where.LineRegex)
		if err != nil {
			return nil, fmt.Errorf("line_regex: %w", err)
		}
		c.reLine = re
	}
	if r.Where.NotLineRegex != "" {
		re, err := regexp.Compile("(?i)" + r.Where.NotLineRegex)
		if err != nil {
			return nil, fmt.Errorf("not_line_regex: %w", err)
		}
		c.reAbsent = re
	}
	return c, nil
}

func registerCompiled(c compiled) {
	kind := strings.ToUpper(c.rule.Kind)
	if kind == "" {
		kind = "STYLE"
	}
	rules.Register(rules.Rule{
		ID:      c.rule.ID,
		Summary: c.rule.Summary,
		Kind:    kind,
		Eval: func(doc *ir.Document) []ir.Violation {
			if c.docKind != "" && doc.Kind != c.docKind {
				return nil
			}
			if c.pathGlob != nil && !c.pathGlob.Match(doc.Path) {
				return nil
			}

			var out []ir.Violation
			if c.reLine != nil {
				for _, ln := range doc.Lines {
					if !c.reLine.MatchString(ln.Text) {
						continue
					}
					out = append(out, ir.Violation{
						RuleID:   c.rule.ID,
						Kind:     kind,
						Severity: strings.ToUpper(c.rule.Severity),
						Path:     doc.Path,
						Line:     ln.Number,
						Message:  c.rule.Message,
						Evidence: strings.TrimSpace(ln.Text),
					})
				}
				return out
			}

			// not_line_regex: the document must contain a matching line.
			for _, ln := range doc.Lines {
				if c.reAbsent.MatchString(ln.Text) {
					return nil
				}
			}
			return []ir.Violation{{
				RuleID:   c.rule.ID,
				Kind:     kind,
				Severity: strings.ToUpper(c.rule.Severity),
				Path:     doc.Path,
				Line:     1,
				Message:  c.rule.Message,
			}}
		},
	})
}
