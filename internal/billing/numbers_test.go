package billing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jewel-backend/internal/timeutil"
)

type fakeCounter struct {
	count int
	err   error
}

func (f *fakeCounter) CountByDatePrefix(ctx context.Context, prefix string) (int, error) {
	return f.count, f.err
}

func fixedClock() func() time.Time {
	loc := timeutil.ToIST(time.Now()).Location()
	return func() time.Time {
		return time.Date(2024, time.March, 15, 11, 30, 0, 0, loc)
	}
}

func TestNextBillNumber(t *testing.T) {
	gen := NewNumberGenerator("SMJ")
	gen.Now = fixedClock()

	// Two bills already issued today: the next one is 003
	num, fallback := gen.NextBillNumber(context.Background(), &fakeCounter{count: 2})
	if num != "SMJ15032024003" {
		t.Errorf("NextBillNumber() = %q, want %q", num, "SMJ15032024003")
	}
	if fallback {
		t.Error("fallback flagged for a healthy counter")
	}

	num, _ = gen.NextBillNumber(context.Background(), &fakeCounter{count: 0})
	if num != "SMJ15032024001" {
		t.Errorf("NextBillNumber() first of day = %q, want %q", num, "SMJ15032024001")
	}
}

func TestNextBillNumberFallback(t *testing.T) {
	gen := NewNumberGenerator("SMJ")
	gen.Now = fixedClock()

	counter := &fakeCounter{err: errors.New("connection refused")}
	num, fallback := gen.NextBillNumber(context.Background(), counter)
	if !fallback {
		t.Fatal("counter failure not flagged as fallback")
	}
	if !strings.HasPrefix(num, "SMJ15032024") {
		t.Errorf("fallback number %q lost the date prefix", num)
	}
	if num == "SMJ15032024" {
		t.Error("fallback number has no suffix")
	}
}

func TestNextExchangeNumber(t *testing.T) {
	gen := NewNumberGenerator("SMJ")
	gen.Now = fixedClock()

	num, fallback := gen.NextExchangeNumber(context.Background(), &fakeCounter{count: 11})
	if num != "EXC-240315-012" {
		t.Errorf("NextExchangeNumber() = %q, want %q", num, "EXC-240315-012")
	}
	if fallback {
		t.Error("fallback flagged for a healthy counter")
	}
}
