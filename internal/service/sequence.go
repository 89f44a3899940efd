package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const trackingPrefix = "GCO"

// TrackingAllocator issues tracking numbers of the form GCO-<year>-<5-digit
// sequence>. Seed pre-allocates a contiguous block for import batches so the
// per-row numbers never collide within the batch.
type TrackingAllocator interface {
	Next(ctx context.Context, now time.Time) (string, error)
	Seed(ctx context.Context, now time.Time, n int) ([]string, error)
}

type trackingScanner interface {
	TrackingNumbersLike(ctx context.Context, pattern string) ([]string, error)
}

// ScanTrackingAllocator derives the next sequence by scanning issued numbers
// for the current year. Two concurrent callers can read the same maximum and
// produce the same number; the unique index on tracking_number rejects the
// loser. CounterTrackingAllocator removes the race entirely.
type ScanTrackingAllocator struct {
	requests trackingScanner
}

// NewScanTrackingAllocator constructs the scan-based allocator.
func NewScanTrackingAllocator(requests trackingScanner) *ScanTrackingAllocator {
	return &ScanTrackingAllocator{requests: requests}
}

// Next returns the next unused tracking number for now's year.
func (a *ScanTrackingAllocator) Next(ctx context.Context, now time.Time) (string, error) {
	max, err := a.maxSequence(ctx, now.Year())
	if err != nil {
		return "", err
	}
	return FormatTrackingNumber(now.Year(), max+1), nil
}

// Seed returns n consecutive unused numbers starting after the highest
// issued one. The block is only reserved in memory, so the caller must
// persist the rows in the same batch that requested it.
func (a *ScanTrackingAllocator) Seed(ctx context.Context, now time.Time, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	max, err := a.maxSequence(ctx, now.Year())
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		numbers = append(numbers, FormatTrackingNumber(now.Year(), max+int64(i)))
	}
	return numbers, nil
}

func (a *ScanTrackingAllocator) maxSequence(ctx context.Context, year int) (int64, error) {
	pattern := fmt.Sprintf("%s-%d-%%", trackingPrefix, year)
	numbers, err := a.requests.TrackingNumbersLike(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("scan issued tracking numbers: %w", err)
	}
	var max int64
	for _, number := range numbers {
		seq, ok := parseTrackingSequence(number)
		if ok && seq > max {
			max = seq
		}
	}
	return max, nil
}

type sequenceCounter interface {
	Next(ctx context.Context, scope string) (int64, error)
	Reserve(ctx context.Context, scope string, n int64) (int64, error)
}

// CounterTrackingAllocator issues numbers from an atomic per-year counter.
type CounterTrackingAllocator struct {
	counters sequenceCounter
}

// NewCounterTrackingAllocator constructs the counter-based allocator.
func NewCounterTrackingAllocator(counters sequenceCounter) *CounterTrackingAllocator {
	return &CounterTrackingAllocator{counters: counters}
}

// Next returns the next tracking number for now's year.
func (a *CounterTrackingAllocator) Next(ctx context.Context, now time.Time) (string, error) {
	seq, err := a.counters.Next(ctx, trackingScope(now.Year()))
	if err != nil {
		return "", err
	}
	return FormatTrackingNumber(now.Year(), seq), nil
}

// Seed reserves a contiguous block of n numbers.
func (a *CounterTrackingAllocator) Seed(ctx context.Context, now time.Time, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	first, err := a.counters.Reserve(ctx, trackingScope(now.Year()), int64(n))
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, n)
	for i := int64(0); i < int64(n); i++ {
		numbers = append(numbers, FormatTrackingNumber(now.Year(), first+i))
	}
	return numbers, nil
}

func trackingScope(year int) string {
	return fmt.Sprintf("tracking:%d", year)
}

// FormatTrackingNumber renders GCO-<year>-<zero-padded sequence>. Sequences
// past 99999 widen rather than wrap.
func FormatTrackingNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", trackingPrefix, year, seq)
}

// FormatTicketNumber renders TKT-<yyyymmdd>-<zero-padded sequence>.
func FormatTicketNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("TKT-%s-%04d", now.Format("20060102"), seq)
}

func parseTrackingSequence(number string) (int64, bool) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, false
	}
	seq, err := strconv.ParseInt(number[idx+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}
