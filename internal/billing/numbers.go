package billing

import (
	"context"
	"fmt"
	"time"

	"jewel-backend/internal/timeutil"
)

// SequenceCounter counts existing ledger records whose number starts with
// the given date prefix. Implemented by the bill and exchange repositories.
type SequenceCounter interface {
	CountByDatePrefix(ctx context.Context, prefix string) (int, error)
}

// NumberGenerator produces human-readable, date-scoped sequential numbers.
// The generated candidate is very likely unique; the ledger's unique index
// is the final arbiter and the caller retries once on conflict before
// accepting a timestamp-suffixed fallback.
type NumberGenerator struct {
	ShopPrefix string
	Now        func() time.Time
}

// NewNumberGenerator returns a generator stamped with the shop prefix.
// The clock defaults to IST wall time.
func NewNumberGenerator(shopPrefix string) *NumberGenerator {
	return &NumberGenerator{ShopPrefix: shopPrefix, Now: timeutil.Now}
}

// BillPrefix returns today's bill number prefix, e.g. SMJ15032024
func (g *NumberGenerator) BillPrefix() string {
	return g.ShopPrefix + timeutil.ToIST(g.Now()).Format("02012006")
}

// ExchangePrefix returns today's exchange number prefix, e.g. EXC-240315-
func (g *NumberGenerator) ExchangePrefix() string {
	return "EXC-" + timeutil.ToIST(g.Now()).Format("060102") + "-"
}

// NextBillNumber generates the next bill number for today:
// <ShopPrefix><DDMMYYYY><sequence>, sequence zero-padded to 3 digits.
// A counter failure falls back to a timestamp-suffixed number so billing
// never blocks on numbering; the second return flags the fallback form.
func (g *NumberGenerator) NextBillNumber(ctx context.Context, counter SequenceCounter) (string, bool) {
	prefix := g.BillPrefix()
	count, err := counter.CountByDatePrefix(ctx, prefix)
	if err != nil {
		return g.fallback(prefix), true
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), false
}

// NextExchangeNumber generates the next exchange number for today:
// EXC-<YY><MM><DD>-<sequence>, sequence zero-padded to 3 digits.
func (g *NumberGenerator) NextExchangeNumber(ctx context.Context, counter SequenceCounter) (string, bool) {
	prefix := g.ExchangePrefix()
	count, err := counter.CountByDatePrefix(ctx, prefix)
	if err != nil {
		return g.fallback(prefix), true
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), false
}

// FallbackBillNumber returns a timestamp-suffixed bill number for when the
// sequential candidate keeps colliding.
func (g *NumberGenerator) FallbackBillNumber() string {
	return g.fallback(g.BillPrefix())
}

// FallbackExchangeNumber is the exchange counterpart of FallbackBillNumber
func (g *NumberGenerator) FallbackExchangeNumber() string {
	return g.fallback(g.ExchangePrefix())
}

// fallback appends the millisecond clock so a candidate is still available
// when the ledger count is unreachable. Non-canonical: collision risk under
// concurrent fallback is accepted in exchange for availability.
func (g *NumberGenerator) fallback(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, g.Now().UnixMilli()%100000)
}
