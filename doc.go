// Package clubsync provides an embeddable multi-tenant club management core for Go applications.
//
// ClubSync is designed as a library, not a service. Import it directly into your
// Go application and expose whatever transport you like on top. It provides:
//
//   - Live per-club snapshots fed by store change feeds
//   - Idempotent monthly dues generation from the club fee table
//   - Schedule conflict detection with per-instructor overlap checks
//   - Atomic payment registration with frozen receipt templates
//   - Member account statements with running balances
//   - QR check-in attendance logging
//   - Metered uploads with per-club storage quotas
//
// # Quick Start
//
// Create a portal instance with your preferred store:
//
//	import (
//	    "github.com/xraph/clubsync"
//	    "github.com/xraph/clubsync/store/memory"
//	)
//
//	// Initialize store
//	store := memory.New()
//
//	// Create portal
//	p := clubsync.New(store)
//
//	// Start the portal (begins background workers)
//	if err := p.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Stop()
//
// # Core Concepts
//
// Each club is a tenant. Members belong to a club and carry a member
// type that selects their monthly fee:
//
//	m, err := p.SaveMember(ctx, &member.Member{
//	    ClubID:     clubID,
//	    Name:       "Ana Suárez",
//	    MemberType: "cadet",
//	})
//
// Dues are generated once per club and period; rerunning is a no-op
// for members already covered:
//
//	created, err := p.GenerateDues(ctx, clubID, types.Period("2026-09"))
//
// Only active, unarchived members with a configured fee for their
// member type are billed.
//
// Payments settle a due and freeze the club's receipt template onto
// the issued receipt:
//
//	pay, err := p.RegisterPayment(ctx, clubID, dueID, clubsync.PaymentInput{
//	    Method:  payment.MethodManual,
//	    Details: "front desk",
//	})
//
// Aggregators expose a live, immutable snapshot of a club's data:
//
//	agg, err := p.Open(ctx, clubID)
//	if err := agg.WaitReady(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	snap := agg.Snapshot()
//
// # Concurrency
//
// Snapshots are immutable; readers never block writers. Dues
// generation, payment registration, and instructor saves are atomic
// at the store layer, so concurrent staff sessions cannot produce
// duplicate dues or half-written records.
//
// All monetary calculations use integer arithmetic to avoid
// floating-point precision issues. The Money type represents amounts
// in the smallest currency unit (centavos for ARS, cents for USD).
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	club_01h2xcejqtf2nbrexx3vqjhp41    // Club ID
//	member_01h2xcejqtf2nbrexx3vqjhp41  // Member ID
//	due_01h455vb4pex5vsknk084sn02q     // Due ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package clubsync
