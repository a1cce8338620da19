package loader

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
	"fairdivisiondss/internal/shared"
)

// BuildSolverInputs flattens a dispute into SolverInputs plus the index that
// maps solver positions back to agent and good IDs. The dispute aggregate is
// never referenced by the returned value.
func BuildSolverInputs(d *Dispute) (*domain.SolverInputs, *Index, error) {
	if len(d.Agents) == 0 {
		return nil, nil, shared.NewDisputeInvalid("dispute has no agents")
	}
	if len(d.Goods) == 0 {
		return nil, nil, shared.NewDisputeInvalid("dispute has no goods")
	}
	if d.Method != MethodBids && d.Method != MethodRatings {
		return nil, nil, shared.NewDisputeInvalid(
			fmt.Sprintf("unknown resolution method %q", d.Method))
	}

	index := &Index{
		AgentIDs: make([]uuid.UUID, len(d.Agents)),
		GoodIDs:  make([]uuid.UUID, len(d.Goods)),
		agentPos: make(map[uuid.UUID]int, len(d.Agents)),
		goodPos:  make(map[uuid.UUID]int, len(d.Goods)),
	}
	for i, agent := range d.Agents {
		if _, dup := index.agentPos[agent.ID]; dup {
			return nil, nil, shared.NewDisputeInvalid("duplicate agent ID").
				WithDetails("agent_id", agent.ID.String())
		}
		index.AgentIDs[i] = agent.ID
		index.agentPos[agent.ID] = i
	}
	for j, good := range d.Goods {
		if _, dup := index.goodPos[good.ID]; dup {
			return nil, nil, shared.NewDisputeInvalid("duplicate good ID").
				WithDetails("good_id", good.ID.String())
		}
		if good.EstimatedValue < 0 || math.IsNaN(good.EstimatedValue) {
			return nil, nil, shared.NewDisputeInvalid("good value must be non-negative").
				WithDetails("good_id", good.ID.String())
		}
		index.GoodIDs[j] = good.ID
		index.goodPos[good.ID] = j
	}

	entitlements, err := fillEntitlements(d.Agents)
	if err != nil {
		return nil, nil, err
	}

	utilities, err := deriveUtilities(d, index)
	if err != nil {
		return nil, nil, err
	}

	in := domain.NewSolverInputs(utilities, entitlements)

	if len(d.Restrictions) > 0 {
		restrictions := make([][]bool, len(d.Agents))
		for i := range restrictions {
			restrictions[i] = make([]bool, len(d.Goods))
			for j := range restrictions[i] {
				restrictions[i][j] = true
			}
		}
		for _, r := range d.Restrictions {
			i, ok := index.AgentPos(r.AgentID)
			if !ok {
				return nil, nil, shared.NewDisputeInvalid("restriction references unknown agent").
					WithDetails("agent_id", r.AgentID.String())
			}
			j, ok := index.GoodPos(r.GoodID)
			if !ok {
				return nil, nil, shared.NewDisputeInvalid("restriction references unknown good").
					WithDetails("good_id", r.GoodID.String())
			}
			restrictions[i][j] = false
		}
		in.Restrictions = restrictions
	}

	// Value budget: the goods' total value widened by the bounds percentage.
	boundsPercentage := d.BoundsPercentage
	if boundsPercentage == 0 {
		boundsPercentage = DefaultBoundsPercentage
	}
	totalValue := 0.0
	goodValues := make([]float64, len(d.Goods))
	for j, good := range d.Goods {
		goodValues[j] = good.EstimatedValue
		totalValue += good.EstimatedValue
	}
	budget := totalValue + boundsPercentage*totalValue
	in.GoodValues = goodValues
	in.Budget = &budget

	if err := in.Validate(); err != nil {
		return nil, nil, err
	}

	return in, index, nil
}

// fillEntitlements keeps explicit positive shares and splits the remainder
// equally among agents without one. A leftover with no agent to take it is
// discarded; explicit shares beyond 1 leave nothing valid for the rest.
func fillEntitlements(agents []Agent) ([]float64, error) {
	totalExplicit := 0.0
	implicit := 0
	for _, agent := range agents {
		if agent.ShareOfEntitlement < 0 || math.IsNaN(agent.ShareOfEntitlement) {
			return nil, shared.NewDisputeInvalid("entitlement share must be non-negative").
				WithDetails("agent_id", agent.ID.String())
		}
		if agent.ShareOfEntitlement > 0 {
			totalExplicit += agent.ShareOfEntitlement
		} else {
			implicit++
		}
	}

	defaultShare := 0.0
	if implicit > 0 {
		remaining := 1.0 - totalExplicit
		if remaining <= 0 {
			return nil, shared.NewDisputeInvalid(
				"explicit entitlement shares leave no positive remainder for the other agents")
		}
		defaultShare = remaining / float64(implicit)
	}

	entitlements := make([]float64, len(agents))
	for i, agent := range agents {
		if agent.ShareOfEntitlement > 0 {
			entitlements[i] = agent.ShareOfEntitlement
		} else {
			entitlements[i] = defaultShare
		}
	}
	return entitlements, nil
}

func deriveUtilities(d *Dispute, index *Index) ([][]float64, error) {
	utilities := make([][]float64, len(d.Agents))
	for i := range utilities {
		utilities[i] = make([]float64, len(d.Goods))
	}

	switch d.Method {
	case MethodBids:
		for _, bid := range d.Bids {
			i, ok := index.AgentPos(bid.AgentID)
			if !ok {
				return nil, shared.NewDisputeInvalid("bid references unknown agent").
					WithDetails("agent_id", bid.AgentID.String())
			}
			j, ok := index.GoodPos(bid.GoodID)
			if !ok {
				return nil, shared.NewDisputeInvalid("bid references unknown good").
					WithDetails("good_id", bid.GoodID.String())
			}
			if bid.Value < 0 || math.IsNaN(bid.Value) {
				return nil, shared.NewDisputeInvalid("bid value must be non-negative").
					WithDetails("agent_id", bid.AgentID.String()).
					WithDetails("good_id", bid.GoodID.String())
			}
			utilities[i][j] = bid.Value
		}

	case MethodRatings:
		ratingWeight := d.RatingWeight
		if ratingWeight == 0 {
			ratingWeight = DefaultRatingWeight
		}
		if ratingWeight <= 0 {
			return nil, shared.NewDisputeInvalid("rating weight must be positive")
		}
		for _, rating := range d.Ratings {
			i, ok := index.AgentPos(rating.AgentID)
			if !ok {
				return nil, shared.NewDisputeInvalid("rating references unknown agent").
					WithDetails("agent_id", rating.AgentID.String())
			}
			j, ok := index.GoodPos(rating.GoodID)
			if !ok {
				return nil, shared.NewDisputeInvalid("rating references unknown good").
					WithDetails("good_id", rating.GoodID.String())
			}
			if rating.Stars < 1 || rating.Stars > 5 {
				return nil, shared.NewDisputeInvalid("rating must be between 1 and 5 stars").
					WithDetails("stars", rating.Stars)
			}
			// weight^(stars-3) * value: three stars is the neutral point.
			utilities[i][j] = math.Pow(ratingWeight, float64(rating.Stars-3)) * d.Goods[j].EstimatedValue
		}
	}

	return utilities, nil
}
