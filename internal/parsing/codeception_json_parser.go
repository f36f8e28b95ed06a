package parsing

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

// CodeceptionJSONParser parses the report written by `codecept run --json`. The report is the PHPUnit JSON log: a
// stream of concatenated event objects. Some versions wrap the events in an array, both forms are accepted.
type CodeceptionJSONParser struct{}

type CodeceptionFrame struct {
	File     string `json:"file"`
	Line     *int   `json:"line"`
	Class    string `json:"class"`
	Function string `json:"function"`
}

type CodeceptionEvent struct {
	Event   *string            `json:"event"`
	Suite   string             `json:"suite"`
	Test    string             `json:"test"`
	Status  string             `json:"status"`
	Time    float64            `json:"time"`
	Message string             `json:"message"`
	Output  string             `json:"output"`
	Trace   []CodeceptionFrame `json:"trace"`
}

const (
	codeceptionEventTest = "test"

	codeceptionStatusPass       = "pass"
	codeceptionStatusSuccess    = "success"
	codeceptionStatusFail       = "fail"
	codeceptionStatusError      = "error"
	codeceptionStatusWarning    = "warning"
	codeceptionStatusRisky      = "risky"
	codeceptionStatusSkipped    = "skipped"
	codeceptionStatusIncomplete = "incomplete"
)

// PHPUnit's JSON logger reports skipped & incomplete tests as errors with these message prefixes.
var codeceptionSkippedPrefixes = []string{"Skipped Test", "Incomplete Test"}

func (p CodeceptionJSONParser) Parse(data io.Reader, buildRoot string) (*Report, error) {
	events, err := p.decode(data)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	for i, event := range events {
		if event.Event == nil {
			return nil, errors.NewParseError("Event #%d does not appear to match the Codeception JSON format", i+1)
		}

		if *event.Event != codeceptionEventTest {
			continue
		}

		if event.Test == "" {
			return nil, errors.NewParseError("Test event #%d is missing a test name", i+1)
		}

		result, failure := p.testResult(event, buildRoot)
		report.Results = append(report.Results, result)
		if failure != nil {
			report.Failures = append(report.Failures, *failure)
		}
	}

	return report, nil
}

func (p CodeceptionJSONParser) decode(data io.Reader) ([]CodeceptionEvent, error) {
	reader := bufio.NewReader(data)

	first, err := peekNonSpace(reader)
	if err == io.EOF {
		return []CodeceptionEvent{}, nil
	}
	if err != nil {
		return nil, errors.NewSystemError("Unable to read test results: %s", err)
	}

	decoder := json.NewDecoder(reader)

	if first == '[' {
		events := make([]CodeceptionEvent, 0)
		if err := decoder.Decode(&events); err != nil {
			return nil, errors.NewParseError("Unable to parse test results as JSON: %s", err)
		}

		return events, nil
	}

	events := make([]CodeceptionEvent, 0)
	for {
		var event CodeceptionEvent
		err := decoder.Decode(&event)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParseError("Unable to parse test results as JSON: %s", err)
		}

		events = append(events, event)
	}

	return events, nil
}

func (p CodeceptionJSONParser) testResult(event CodeceptionEvent, buildRoot string) (TestResult, *FailureRecord) {
	result := TestResult{
		Suite:    event.Suite,
		Name:     event.Test,
		Duration: durationFromSeconds(event.Time),
		Message:  event.Message,
		Output:   event.Output,
	}

	var native NativeSeverity
	switch event.Status {
	case codeceptionStatusPass, codeceptionStatusSuccess:
		result.Status = TestStatusPass
		return result, nil
	case codeceptionStatusSkipped, codeceptionStatusIncomplete:
		result.Status = TestStatusSkipped
		return result, nil
	case codeceptionStatusError:
		if hasAnyPrefix(event.Message, codeceptionSkippedPrefixes) {
			result.Status = TestStatusSkipped
			return result, nil
		}

		result.Status = TestStatusError
		native = NativeSeverityError
	case codeceptionStatusFail:
		result.Status = TestStatusFail
		native = NativeSeverityFail
	case codeceptionStatusWarning, codeceptionStatusRisky:
		result.Status = TestStatusPass
		native = NativeSeverity(event.Status)
	default:
		// Statuses we do not know yet are kept as failures. The classifier maps them onto its default tier.
		result.Status = TestStatusFail
		native = NativeSeverity(event.Status)
	}

	failure := &FailureRecord{
		Test:           event.Test,
		Message:        event.Message,
		NativeSeverity: native,
	}

	if len(event.Trace) > 0 && event.Trace[0].File != "" {
		file := relativeTo(buildRoot, event.Trace[0].File)
		failure.File = &file
		failure.Line = event.Trace[0].Line
	}

	return result, failure
}

func peekNonSpace(reader *bufio.Reader) (byte, error) {
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}

		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}

		return b, reader.UnreadByte()
	}
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}

	return false
}
