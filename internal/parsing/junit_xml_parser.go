package parsing

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

// JUnitXMLParser parses the report written by `codecept run --xml`, which follows the PHPUnit flavour of JUnit XML.
type JUnitXMLParser struct{}

type JUnitFailure struct {
	Type     string `xml:"type,attr"`
	Message  string `xml:"message,attr"`
	Contents string `xml:",chardata"`
}

type JUnitSkipped struct{}

type JUnitTestCase struct {
	Class     string        `xml:"class,attr"`
	ClassName string        `xml:"classname,attr"`
	Error     *JUnitFailure `xml:"error"`
	Failure   *JUnitFailure `xml:"failure"`
	Warning   *JUnitFailure `xml:"warning"`
	Name      string        `xml:"name,attr"`
	Skipped   *JUnitSkipped `xml:"skipped"`
	Time      float64       `xml:"time,attr"`
	File      string        `xml:"file,attr"`
	Line      *int          `xml:"line,attr"`
	SystemOut string        `xml:"system-out"`

	XMLName xml.Name `xml:"testcase"`
}

type JUnitTestSuite struct {
	Name       string           `xml:"name,attr"`
	TestCases  []JUnitTestCase  `xml:"testcase"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`

	XMLName xml.Name `xml:"testsuite"`
}

type JUnitTestResults struct {
	TestSuites []JUnitTestSuite `xml:"testsuite"`
	XMLName    xml.Name         `xml:"testsuites"`
}

func (p JUnitXMLParser) Parse(data io.Reader, buildRoot string) (*Report, error) {
	var testResults JUnitTestResults

	if err := xml.NewDecoder(data).Decode(&testResults); err != nil {
		if err == io.EOF {
			return NewReport(), nil
		}

		return nil, errors.NewParseError("Unable to parse test results as XML: %s", err)
	}

	report := NewReport()
	for _, suite := range testResults.TestSuites {
		p.collect(report, suite, suite.Name, buildRoot)
	}

	return report, nil
}

func (p JUnitXMLParser) collect(report *Report, suite JUnitTestSuite, suiteName, buildRoot string) {
	for _, testCase := range suite.TestCases {
		name := testCase.Name
		if class := firstNonEmpty(testCase.Class, testCase.ClassName); class != "" {
			name = fmt.Sprintf("%s::%s", class, testCase.Name)
		}

		result := TestResult{
			Suite:    suiteName,
			Name:     name,
			Duration: durationFromSeconds(testCase.Time),
			Output:   testCase.SystemOut,
		}

		var failure *JUnitFailure
		var native NativeSeverity
		switch {
		case testCase.Error != nil:
			result.Status = TestStatusError
			failure, native = testCase.Error, NativeSeverityError
		case testCase.Failure != nil:
			result.Status = TestStatusFail
			failure, native = testCase.Failure, NativeSeverityFail
		case testCase.Skipped != nil:
			result.Status = TestStatusSkipped
		case testCase.Warning != nil:
			result.Status = TestStatusPass
			failure, native = testCase.Warning, NativeSeverityWarning
		default:
			result.Status = TestStatusPass
		}

		if failure != nil && failure.Type == "PHPUnit\\Framework\\RiskyTestError" {
			result.Status = TestStatusPass
			native = NativeSeverityRisky
		}

		if failure != nil {
			result.Message = failureMessage(*failure)

			record := FailureRecord{Test: name, Message: result.Message, NativeSeverity: native}
			if testCase.File != "" {
				file := relativeTo(buildRoot, testCase.File)
				record.File = &file
				record.Line = testCase.Line
			}

			report.Results = append(report.Results, result)
			report.Failures = append(report.Failures, record)
			continue
		}

		report.Results = append(report.Results, result)
	}

	for _, nested := range suite.TestSuites {
		p.collect(report, nested, firstNonEmpty(nested.Name, suiteName), buildRoot)
	}
}

// failureMessage prefers the message attribute and falls back to the first non-empty line of the body.
func failureMessage(failure JUnitFailure) string {
	if failure.Message != "" {
		return failure.Message
	}

	for _, line := range strings.Split(failure.Contents, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return failure.Type
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
