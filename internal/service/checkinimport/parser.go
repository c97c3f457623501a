package checkinimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	attendancesvc "github.com/biotrackhr/biotrack-backend-go/internal/service/attendance"
)

// headerMarker is the literal token the real header row starts with. Device
// export files often carry banner lines before the table; scanning for this
// token finds where the table begins.
const headerMarker = "No"

// Required columns, matched by header name, order-independent.
var requiredColumns = []string{"Date", "Time", "Employee ID", "Punch State"}

// Directions of a normalized row.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// StructuralError means the import input as a whole is malformed (no header
// row, required columns missing). It is fatal to the batch.
type StructuralError struct {
	Missing []string
	msg     string
}

func (e *StructuralError) Error() string {
	return e.msg
}

func newMissingHeaderError() *StructuralError {
	return &StructuralError{
		msg: fmt.Sprintf("no header row found: expected a line starting with %q", headerMarker),
	}
}

func newMissingColumnsError(missing []string) *StructuralError {
	return &StructuralError{
		Missing: missing,
		msg:     "missing required columns: " + strings.Join(missing, ", "),
	}
}

// RowError records a single unusable row. The batch continues past it.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// PunchMapping decides the direction of a punch-state code. The code-to-IN
// set is vendor-specific configuration, never a hard-coded constant.
type PunchMapping struct {
	inCodes map[int]struct{}
}

func NewPunchMapping(inCodes []int) PunchMapping {
	m := PunchMapping{inCodes: make(map[int]struct{}, len(inCodes))}
	for _, c := range inCodes {
		m.inCodes[c] = struct{}{}
	}
	return m
}

// Direction maps a punch-state code to IN or OUT. Codes that fail to parse
// as integers are treated as OUT.
func (m PunchMapping) Direction(code string) string {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return DirectionOut
	}
	if _, ok := m.inCodes[n]; ok {
		return DirectionIn
	}
	return DirectionOut
}

// Row is one normalized check-in record. Timestamp is "YYYY-MM-DD HH:MM:SS";
// DeviceEmployeeID still needs resolution to a canonical employee id.
type Row struct {
	Line             int
	DeviceEmployeeID string
	Timestamp        string
	Direction        string
}

// Spreadsheet-to-CSV conversions leave mixed delimiters behind, so fields
// are split on runs of tabs or commas.
var fieldSplitter = regexp.MustCompile(`[\t,]+`)

var importDateFormat = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)

// Parser walks a raw export one row at a time so the caller can resolve and
// persist each record without buffering the whole result set.
type Parser struct {
	lines   []string
	pos     int
	columns map[string]int
	mapping PunchMapping
	errs    []RowError
}

// NewParser locates the header row, validates the required columns and
// returns a parser positioned at the first data row.
func NewParser(rawText string, mapping PunchMapping) (*Parser, error) {
	lines := strings.Split(rawText, "\n")

	headerIdx := -1
	for i, line := range lines {
		fields := fieldSplitter.Split(strings.TrimSpace(line), -1)
		if len(fields) > 0 && fields[0] == headerMarker {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, newMissingHeaderError()
	}

	columns := make(map[string]int)
	for i, name := range fieldSplitter.Split(strings.TrimSpace(lines[headerIdx]), -1) {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, newMissingColumnsError(missing)
	}

	return &Parser{
		lines:   lines,
		pos:     headerIdx + 1,
		columns: columns,
		mapping: mapping,
	}, nil
}

// Next returns the next normalized row. The second result is false once the
// input is exhausted. Unusable rows are skipped: silently when a required
// field is simply empty, with a recorded RowError when the date or time is
// malformed.
func (p *Parser) Next() (Row, bool) {
	for p.pos < len(p.lines) {
		lineNo := p.pos + 1
		line := strings.TrimSpace(p.lines[p.pos])
		p.pos++

		if line == "" {
			continue
		}

		fields := fieldSplitter.Split(line, -1)
		field := func(name string) string {
			idx := p.columns[name]
			if idx >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[idx])
		}

		deviceID := field("Employee ID")
		rawDate := field("Date")
		rawTime := field("Time")
		punch := field("Punch State")

		// Rows missing the identifying fields are not errors, just noise.
		if deviceID == "" || rawDate == "" || rawTime == "" {
			continue
		}

		isoDate, ok := rewriteDate(rawDate)
		if !ok {
			p.errs = append(p.errs, RowError{
				Line:   lineNo,
				Reason: fmt.Sprintf("invalid date %q: expected DD-MM-YYYY", rawDate),
			})
			continue
		}

		// Some exports put a full timestamp in the Time column; reduce it
		// to the clock before stitching it back onto the Date column.
		clock := rawTime
		if !validClock(clock) {
			reduced, err := attendancesvc.TimeOfDay(rawTime)
			if err != nil {
				p.errs = append(p.errs, RowError{
					Line:   lineNo,
					Reason: fmt.Sprintf("invalid time %q: expected HH:MM:SS", rawTime),
				})
				continue
			}
			clock = reduced
		}

		return Row{
			Line:             lineNo,
			DeviceEmployeeID: deviceID,
			Timestamp:        isoDate + " " + clock,
			Direction:        p.mapping.Direction(punch),
		}, true
	}

	return Row{}, false
}

// Errors returns the row errors collected so far.
func (p *Parser) Errors() []RowError {
	return p.errs
}

// rewriteDate converts DD-MM-YYYY to YYYY-MM-DD.
func rewriteDate(raw string) (string, bool) {
	m := importDateFormat.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}
	return m[3] + "-" + m[2] + "-" + m[1], true
}

var clockFormat = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

func validClock(raw string) bool {
	return clockFormat.MatchString(raw)
}
