package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubTrackingScanner struct {
	numbers []string
	err     error
	pattern string
}

func (s *stubTrackingScanner) TrackingNumbersLike(_ context.Context, pattern string) ([]string, error) {
	s.pattern = pattern
	return s.numbers, s.err
}

func TestScanAllocatorFirstOfYear(t *testing.T) {
	scanner := &stubTrackingScanner{}
	alloc := NewScanTrackingAllocator(scanner)

	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	number, err := alloc.Next(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, "GCO-2025-00001", number)
	require.Equal(t, "GCO-2025-%", scanner.pattern)
}

func TestScanAllocatorSkipsPastHighestIssued(t *testing.T) {
	scanner := &stubTrackingScanner{numbers: []string{
		"GCO-2025-00001",
		"GCO-2025-00017",
		"GCO-2025-00004",
		"GCO-2025-bogus",
	}}
	alloc := NewScanTrackingAllocator(scanner)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	number, err := alloc.Next(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, "GCO-2025-00018", number)
}

func TestScanAllocatorSeedIsContiguous(t *testing.T) {
	scanner := &stubTrackingScanner{numbers: []string{"GCO-2025-00002"}}
	alloc := NewScanTrackingAllocator(scanner)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	numbers, err := alloc.Seed(context.Background(), now, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"GCO-2025-00003", "GCO-2025-00004", "GCO-2025-00005"}, numbers)
}

type stubCounter struct {
	value int64
}

func (s *stubCounter) Next(_ context.Context, _ string) (int64, error) {
	s.value++
	return s.value, nil
}

func (s *stubCounter) Reserve(_ context.Context, _ string, n int64) (int64, error) {
	first := s.value + 1
	s.value += n
	return first, nil
}

func TestCounterAllocatorMonotonic(t *testing.T) {
	alloc := NewCounterTrackingAllocator(&stubCounter{})
	now := time.Date(2025, time.January, 2, 8, 0, 0, 0, time.UTC)

	first, err := alloc.Next(context.Background(), now)
	require.NoError(t, err)
	second, err := alloc.Next(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, "GCO-2025-00001", first)
	require.Equal(t, "GCO-2025-00002", second)

	block, err := alloc.Seed(context.Background(), now, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"GCO-2025-00003", "GCO-2025-00004"}, block)
}

func TestFormatTrackingNumberWidensPastFiveDigits(t *testing.T) {
	require.Equal(t, "GCO-2025-100000", FormatTrackingNumber(2025, 100000))
}

func TestFormatTicketNumber(t *testing.T) {
	now := time.Date(2025, time.September, 3, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "TKT-20250903-0007", FormatTicketNumber(now, 7))
}
