package utils

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

// LogStats summarizes one day of service logs
type LogStats struct {
	TotalErrors           int
	OrdersCreated         int
	OrderFailures         int
	PaymentsVerified      int
	SignatureFailures     int
	BookingFailures       int
	PaymentRecordFailures int
	CounterFailures       int
	AIUpstreamFailures    int
	FailedRequests        int
	ErrorPatterns         map[string]int
}

type logLine struct {
	Msg    string `json:"msg"`
	Status int    `json:"status"`
}

var idPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f-]{27}|order_\w+|pay_\w+|\d+`)

// AnalyzeLogs reads the info and error logs for day from dir
func AnalyzeLogs(dir string, day time.Time) (*LogStats, error) {
	stats := &LogStats{ErrorPatterns: make(map[string]int)}

	errorFile, err := os.Open(LogFileName(dir, "error", day))
	if err != nil {
		return nil, err
	}
	defer errorFile.Close()
	if err := stats.scanErrors(errorFile); err != nil {
		return nil, err
	}

	infoFile, err := os.Open(LogFileName(dir, "info", day))
	if err != nil {
		return nil, err
	}
	defer infoFile.Close()
	if err := stats.scanInfo(infoFile); err != nil {
		return nil, err
	}
	return stats, nil
}

func decodeLine(raw string) logLine {
	var l logLine
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		l.Msg = raw
	}
	return l
}

// maxLogLine bounds one JSON line. Stack traces are logged on a single line.
const maxLogLine = 1 << 20

func newLogScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLine)
	return scanner
}

func (s *LogStats) scanErrors(r io.Reader) error {
	scanner := newLogScanner(r)
	for scanner.Scan() {
		line := decodeLine(scanner.Text())
		s.TotalErrors++

		switch {
		case strings.Contains(line.Msg, "Failed to create gateway order"):
			s.OrderFailures++
		case strings.Contains(line.Msg, "Payment signature mismatch"):
			s.SignatureFailures++
		case strings.Contains(line.Msg, "Failed to create booking"):
			s.BookingFailures++
		case strings.Contains(line.Msg, "Failed to record payment"):
			s.PaymentRecordFailures++
		case strings.Contains(line.Msg, "Failed to update participant count"):
			s.CounterFailures++
		case strings.Contains(line.Msg, "AI gateway"):
			s.AIUpstreamFailures++
		}

		// Group similar errors by masking ids and numbers
		s.ErrorPatterns[idPattern.ReplaceAllString(line.Msg, "#")]++
	}
	return scanner.Err()
}

func (s *LogStats) scanInfo(r io.Reader) error {
	scanner := newLogScanner(r)
	for scanner.Scan() {
		line := decodeLine(scanner.Text())
		switch {
		case strings.Contains(line.Msg, "Created gateway order"):
			s.OrdersCreated++
		case strings.Contains(line.Msg, "Payment verified"):
			s.PaymentsVerified++
		case line.Msg == "Request" && line.Status >= 400:
			s.FailedRequests++
		}
	}
	return scanner.Err()
}

// WriteReport prints a human readable summary
func (s *LogStats) WriteReport(w io.Writer) {
	fmt.Fprintln(w, "=== TripSphere log report ===")
	fmt.Fprintf(w, "Total errors:              %d\n", s.TotalErrors)
	fmt.Fprintf(w, "Failed requests:           %d\n", s.FailedRequests)
	fmt.Fprintln(w, "\nPayments:")
	fmt.Fprintf(w, "  Orders created:          %d\n", s.OrdersCreated)
	fmt.Fprintf(w, "  Order failures:          %d\n", s.OrderFailures)
	fmt.Fprintf(w, "  Payments verified:       %d\n", s.PaymentsVerified)
	fmt.Fprintf(w, "  Signature failures:      %d\n", s.SignatureFailures)
	fmt.Fprintf(w, "  Booking failures:        %d\n", s.BookingFailures)
	fmt.Fprintf(w, "  Payment record failures: %d\n", s.PaymentRecordFailures)
	fmt.Fprintf(w, "  Counter update failures: %d\n", s.CounterFailures)
	fmt.Fprintln(w, "\nAI chat:")
	fmt.Fprintf(w, "  Upstream failures:       %d\n", s.AIUpstreamFailures)

	if len(s.ErrorPatterns) == 0 {
		return
	}
	type pattern struct {
		msg   string
		count int
	}
	patterns := make([]pattern, 0, len(s.ErrorPatterns))
	for msg, count := range s.ErrorPatterns {
		patterns = append(patterns, pattern{msg, count})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].count == patterns[j].count {
			return patterns[i].msg < patterns[j].msg
		}
		return patterns[i].count > patterns[j].count
	})
	fmt.Fprintln(w, "\nTop error patterns:")
	for i, p := range patterns {
		if i == 10 {
			break
		}
		fmt.Fprintf(w, "  %4d  %s\n", p.count, p.msg)
	}
}
