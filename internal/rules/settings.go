package rules

import "strings"

type Settings struct {
	SeverityThreshold string
	Disabled          map[string]bool
	SubjectLimit      int // commit subject length limit
	WrapColumn        int // commit body wrap column
}

var rsettings = Settings{
	SeverityThreshold: "LOW",
	Disabled:          map[string]bool{},
	SubjectLimit:      50,
	WrapColumn:        72,
}

func SetSettings(s Settings) {
	// fill defaults
	if s.SeverityThreshold == "" {
		s.SeverityThreshold = "LOW"
	}
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	if s.SubjectLimit == 0 {
		s.SubjectLimit = 50
	}
	if s.WrapColumn == 0 {
		s.WrapColumn = 72
	}
	rsettings = s
}

func severityRank(sev string) int {
	switch strings.ToUpper(strings.TrimSpace(sev)) {
	case "HIGH":
		return 3
	case "MEDIUM":
		return 2
	default:
		return 1 // LOW or unknown → LOW
	}
}

func severityOK(sev string) bool {
	return severityRank(sev) >= severityRank(rsettings.SeverityThreshold)
}
