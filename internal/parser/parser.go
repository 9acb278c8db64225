package parser

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

type Diagnostics struct {
	Warnings []string
}

var (
	inlineLinkRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)[^)]*\)`)
	refDefRe     = regexp.MustCompile(`^\s*\[[^\]]+\]:\s*(\S+)`)
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
)

// Parse walks the input path and builds a run from every classifiable file.
// A single regular file is accepted too. Unreadable files become warnings,
// never errors.
func Parse(path string) (ir.Run, Diagnostics) {
	var run ir.Run
	run.IRVersion = ir.Version
	run.Source = filepath.Clean(path)
	diags := Diagnostics{}

	addFile := func(p, rel string) {
		kind, ok := Classify(p)
		if !ok {
			return
		}
		// Extensionless files classify as text on name alone; compiled
		// binaries in a corpus must not be scanned line by line.
		if kind == ir.KindText && filepath.Ext(p) == "" && looksBinary(p) {
			return
		}
		doc, err := parseFile(p, rel, kind)
		if err != nil {
			diags.Warnings = append(diags.Warnings, "skip "+rel+": "+err.Error())
			return
		}
		run.Documents = append(run.Documents, doc)
	}

	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		addFile(path, filepath.Base(path))
	} else {
		_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			rel, rerr := filepath.Rel(path, p)
			if rerr != nil {
				rel = p
			}
			addFile(p, filepath.ToSlash(rel))
			return nil
		})
	}

	if len(run.Documents) == 0 {
		diags.Warnings = append(diags.Warnings, "no scannable files found")
	}
	return run, diags
}

// looksBinary sniffs the first block of a file for NUL bytes.
func looksBinary(p string) bool {
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 8192)
	n, _ := f.Read(buf)
	return bytes.IndexByte(buf[:n], 0) != -1
}

func parseFile(p, rel string, kind ir.Kind) (ir.Document, error) {
	f, err := os.Open(p)
	if err != nil {
		return ir.Document{}, err
	}
	defer f.Close()

	doc := ir.Document{Path: rel, Kind: kind}
	var openFence *ir.Fence

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r\n")
		doc.Lines = append(doc.Lines, ir.Line{Number: n, Text: line})

		if kind != ir.KindMarkdown && kind != ir.KindChangelog {
			continue
		}

		trim := strings.TrimSpace(line)

		// Fence open/close. Indented fences inside lists are close enough
		// for lint purposes; we only track the outermost pair.
		if strings.HasPrefix(trim, "```") || strings.HasPrefix(trim, "~~~") {
			if openFence == nil {
				lang := strings.TrimSpace(strings.TrimLeft(trim, "`~"))
				doc.Fences = append(doc.Fences, ir.Fence{StartLine: n, Lang: lang})
				openFence = &doc.Fences[len(doc.Fences)-1]
			} else {
				openFence.EndLine = n
				openFence.Closed = true
				openFence = nil
			}
			continue
		}
		if openFence != nil {
			continue // no structure extraction inside code blocks
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			doc.Headings = append(doc.Headings, ir.Heading{
				Line:  n,
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
			})
		}
		for _, m := range inlineLinkRe.FindAllStringSubmatch(line, -1) {
			doc.Links = append(doc.Links, ir.Link{Line: n, Target: m[1]})
		}
		if m := refDefRe.FindStringSubmatch(line); m != nil {
			doc.Links = append(doc.Links, ir.Link{Line: n, Target: m[1]})
		}
	}
	return doc, sc.Err()
}
