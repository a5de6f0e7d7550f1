package ingest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scopezero/scopezero/internal/logging"
	"github.com/scopezero/scopezero/internal/tabular"
)

// Known logistics partners.
//
//nolint:gochecknoglobals // Fixed partner catalogue.
var (
	KnownPartners            = []string{"DHL", "Maersk", "FedEx"}
	DefaultConnectedPartners = []string{"DHL"}
)

// PartnerState is the connection state of one partner.
type PartnerState string

// Partner states. A partner is connecting from the moment a sync claims it
// until its rows commit or the sync fails.
const (
	PartnerDisconnected PartnerState = "disconnected"
	PartnerConnecting   PartnerState = "connecting"
	PartnerConnected    PartnerState = "connected"
)

// PartnerStatus is a partner's connection state.
type PartnerStatus struct {
	Name      string       `json:"name"`
	State     PartnerState `json:"state"`
	Connected bool         `json:"connected"`
}

// Partners tracks which simulated logistics integrations are connected.
// It is safe for concurrent use.
type Partners struct {
	mu    sync.Mutex
	state map[string]PartnerState
	delay time.Duration
}

// NewPartners returns a registry of KnownPartners with the named ones connected.
// delay simulates the latency of each partner fetch. Unknown names are ignored.
func NewPartners(connected []string, delay time.Duration) *Partners {
	p := &Partners{state: make(map[string]PartnerState, len(KnownPartners)), delay: delay}
	for _, name := range KnownPartners {
		p.state[name] = PartnerDisconnected
	}
	for _, name := range connected {
		if canon, ok := canonicalPartner(name); ok {
			p.state[canon] = PartnerConnected
		}
	}
	return p
}

func canonicalPartner(name string) (string, bool) {
	for _, known := range KnownPartners {
		if strings.EqualFold(strings.TrimSpace(name), known) {
			return known, true
		}
	}
	return "", false
}

// Status lists every partner in catalogue order.
func (p *Partners) Status() []PartnerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]PartnerStatus, 0, len(KnownPartners))
	for _, name := range KnownPartners {
		st := p.state[name]
		out = append(out, PartnerStatus{Name: name, State: st, Connected: st == PartnerConnected})
	}
	return out
}

// fetch simulates pulling a partner's shipment feed.
func (p *Partners) fetch(ctx context.Context, partner string) ([][]string, error) {
	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	supplier := partner + " Partner"
	return [][]string{
		{"2024-05-15", supplier, "Industrial Parts", "1200", "4500", "Cargo Ship", "Asia"},
		{"2024-05-16", supplier, "Packaging", "300", "800", "Heavy Duty Truck", "Direct"},
	}, nil
}

// SyncPartners connects the named partners and commits their shipments as one batch.
//
// Every name must be a known partner (ErrUnknownPartner otherwise). Partners that
// are already connected, or being connected by another sync, are skipped and
// listed in the result. Feeds are fetched in parallel and merged in argument
// order. Partners are marked connected only after the commit succeeds; on
// failure they return to disconnected.
func (i *Ingestor) SyncPartners(ctx context.Context, names ...string) (*CommitResult, error) {
	p := i.partners
	log := logging.FromContext(ctx)

	pending, skipped, err := p.claim(names)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return &CommitResult{Origin: OriginPartner, Skipped: skipped, Snapshot: i.store.Snapshot()}, nil
	}

	committed := false
	defer func() { p.settle(pending, committed) }()

	feeds := make([][][]string, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for idx, name := range pending {
		g.Go(func() error {
			rows, err := p.fetch(gctx, name)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", name, err)
			}
			feeds[idx] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := [][]string{{"Date", "Supplier", "Material", "Weight", "Distance", "TransportMode", "Region"}}
	for _, rows := range feeds {
		records = append(records, rows...)
	}

	result, err := i.IngestTable(ctx, tabular.FromRecords(records), OriginPartner)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped
	committed = true

	log.Info().Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "sync_partners").
		Strs("connected", pending).
		Strs("skipped", skipped).
		Msg("partners synced")
	return result, nil
}

// claim validates names and moves every disconnected one to connecting under
// a single lock. Connected and connecting partners are returned as skipped.
func (p *Partners) claim(names []string) (pending, skipped []string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, name := range names {
		canon, ok := canonicalPartner(name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownPartner, name)
		}
		switch {
		case slices.Contains(pending, canon):
		case p.state[canon] != PartnerDisconnected:
			skipped = append(skipped, canon)
		default:
			pending = append(pending, canon)
		}
	}
	for _, name := range pending {
		p.state[name] = PartnerConnecting
	}
	return pending, skipped, nil
}

// settle ends a sync started by claim.
func (p *Partners) settle(names []string, ok bool) {
	next := PartnerDisconnected
	if ok {
		next = PartnerConnected
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range names {
		p.state[name] = next
	}
}
