package report

import (
	"encoding/json"

	"github.com/probelabs/mermaid-lint/internal/diag"
)

// JSONDiagnostic is one diagnostic in the JSON report.
type JSONDiagnostic struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	Length   int    `json:"length,omitempty"`
}

// JSONReport is the root shape of the machine-readable report.
type JSONReport struct {
	File         string           `json:"file"`
	Valid        bool             `json:"valid"`
	ErrorCount   int              `json:"errorCount"`
	WarningCount int              `json:"warningCount"`
	Errors       []JSONDiagnostic `json:"errors"`
	Warnings     []JSONDiagnostic `json:"warnings"`
}

// ToJSON converts diags into the shared JSON report shape. Errors and
// Warnings are both non-nil (possibly empty) so the marshaled form always
// carries both arrays.
func ToJSON(file string, diags []diag.Diagnostic) JSONReport {
	out := JSONReport{
		File:     file,
		Errors:   []JSONDiagnostic{},
		Warnings: []JSONDiagnostic{},
	}
	for _, d := range diags {
		jd := JSONDiagnostic{
			Line:     d.Position.Line,
			Column:   d.Position.Column,
			Severity: d.Severity.String(),
			Code:     string(d.Code),
			Message:  d.Message,
			Hint:     d.Hint,
			Length:   d.Position.Length,
		}
		if d.Severity == diag.SevError {
			out.ErrorCount++
			out.Errors = append(out.Errors, jd)
		} else {
			out.WarningCount++
			out.Warnings = append(out.Warnings, jd)
		}
	}
	out.Valid = out.ErrorCount == 0
	return out
}

// Marshal renders a JSONReport as indented JSON text.
func Marshal(r JSONReport) (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
