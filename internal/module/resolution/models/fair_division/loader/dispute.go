// Package loader assembles solver inputs from a dispute aggregate: agents,
// goods, their bids or ratings, entitlement shares and per-pair restrictions.
// It is the only integration surface between the numerical core and the rest
// of the system; everything it emits is flat matrices and index arrays.
package loader

import "github.com/google/uuid"

// ResolutionMethod selects how utilities are derived.
type ResolutionMethod string

const (
	// MethodBids takes each agent's monetary bid as its utility.
	MethodBids ResolutionMethod = "bids"
	// MethodRatings derives utilities from 1-5 star ratings and good values.
	MethodRatings ResolutionMethod = "ratings"
)

// Default parameters mirrored from the dispute record defaults.
const (
	DefaultBoundsPercentage = 0.25
	DefaultRatingWeight     = 1.1
)

// Agent is a participant claiming a share of the allocation.
type Agent struct {
	ID   uuid.UUID
	Name string
	// ShareOfEntitlement is the explicit entitlement share in (0, 1], or 0
	// to receive an equal split of whatever the explicit shares leave over.
	ShareOfEntitlement float64
}

// Good is a divisible item under dispute.
type Good struct {
	ID             uuid.UUID
	Name           string
	EstimatedValue float64
}

// Bid is an agent's monetary valuation of one good.
type Bid struct {
	AgentID uuid.UUID
	GoodID  uuid.UUID
	Value   float64
}

// Rating is an agent's 1-5 star valuation of one good.
type Rating struct {
	AgentID uuid.UUID
	GoodID  uuid.UUID
	Stars   int
}

// Restriction forbids one agent from receiving any fraction of one good.
type Restriction struct {
	AgentID uuid.UUID
	GoodID  uuid.UUID
}

// Dispute is the aggregate the loader flattens into SolverInputs.
type Dispute struct {
	ID     uuid.UUID
	Name   string
	Method ResolutionMethod

	Agents       []Agent
	Goods        []Good
	Bids         []Bid
	Ratings      []Rating
	Restrictions []Restriction

	// BoundsPercentage widens the value budget above the sum of good
	// values. Zero selects the default.
	BoundsPercentage float64

	// RatingWeight is the base of the rating-to-utility formula
	// weight^(stars-3) * value. Zero selects the default.
	RatingWeight float64
}

// Index maps solver row/column positions back to domain identifiers. The
// orderings are exactly the slice orders of the dispute aggregate.
type Index struct {
	AgentIDs []uuid.UUID
	GoodIDs  []uuid.UUID

	agentPos map[uuid.UUID]int
	goodPos  map[uuid.UUID]int
}

// AgentPos returns the solver row of an agent ID.
func (ix *Index) AgentPos(id uuid.UUID) (int, bool) {
	pos, ok := ix.agentPos[id]
	return pos, ok
}

// GoodPos returns the solver column of a good ID.
func (ix *Index) GoodPos(id uuid.UUID) (int, bool) {
	pos, ok := ix.goodPos[id]
	return pos, ok
}
