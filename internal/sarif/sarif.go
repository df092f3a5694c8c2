// Package sarif reads and writes SARIF documents on disk and summarizes normalized output.
package sarif

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/sarifclean/internal/tree"
	sharederrors "github.com/scan-io-git/sarifclean/pkg/shared/errors"
	"github.com/scan-io-git/sarifclean/pkg/shared/files"
)

// ReadDocument reads inputPath and parses it into a document tree.
func ReadDocument(inputPath string) (any, error) {
	data, err := files.ReadFile(inputPath)
	if err != nil {
		return nil, sharederrors.NewIOError("read", inputPath, err)
	}

	doc, err := tree.Decode(data)
	if err != nil {
		parseErr := &sharederrors.ParseError{Path: inputPath, Err: err}
		var decodeErr *tree.DecodeError
		if errors.As(err, &decodeErr) {
			parseErr.Offset = decodeErr.Offset
			parseErr.Err = decodeErr.Err
		}
		return nil, parseErr
	}
	return doc, nil
}

// Encode serializes a normalized document with the given indentation.
func Encode(doc any, indent int) ([]byte, error) {
	data, err := tree.Encode(doc, indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// WriteDocument writes encoded output to outputPath, replacing its content.
func WriteDocument(outputPath string, data []byte) error {
	if err := files.WriteJsonFile(outputPath, data); err != nil {
		return sharederrors.NewIOError("write", outputPath, err)
	}
	return nil
}

// Summary describes a normalized document as seen by a SARIF consumer.
type Summary struct {
	Tools    []string
	Runs     int
	Results  int
	Rules    int
	Severity map[string]int
}

// Summarize loads data with the go-sarif object model, which rejects documents
// a typed consumer cannot read, and counts what it contains.
func Summarize(data []byte) (*Summary, error) {
	report, err := sarif.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load normalized document: %w", err)
	}

	summary := &Summary{
		Runs:     len(report.Runs),
		Severity: collectSeverityInfo(report),
	}
	for _, run := range report.Runs {
		summary.Results += len(run.Results)
		if run.Tool.Driver == nil {
			continue
		}
		summary.Tools = append(summary.Tools, run.Tool.Driver.Name)
		summary.Rules += len(run.Tool.Driver.Rules)
	}
	summary.Severity["total"] = summary.Results
	return summary, nil
}

// collectSeverityInfo counts results per severity bucket. Results without a level count as low.
func collectSeverityInfo(report *sarif.Report) map[string]int {
	severityInfo := map[string]int{
		"low":    0,
		"medium": 0,
		"high":   0,
	}

	for _, run := range report.Runs {
		for _, result := range run.Results {
			level := ""
			if result.Level != nil {
				level = *result.Level
			}
			switch level {
			case "error":
				severityInfo["high"]++
			case "warning":
				severityInfo["medium"]++
			default:
				severityInfo["low"]++
			}
		}
	}
	return severityInfo
}

// LogSummary writes s to logger the way the command reports its result.
func LogSummary(logger hclog.Logger, s *Summary) {
	logger.Info("normalized document",
		"runs", s.Runs,
		"results", s.Results,
		"rules", s.Rules,
		"high", s.Severity["high"],
		"medium", s.Severity["medium"],
		"low", s.Severity["low"],
	)
	for _, tool := range s.Tools {
		logger.Debug("run produced by", "tool", tool)
	}
}
