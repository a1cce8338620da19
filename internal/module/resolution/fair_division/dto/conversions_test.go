package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
	"fairdivisiondss/internal/module/resolution/models/fair_division/loader"
	"fairdivisiondss/internal/shared"
)

func TestToDispute(t *testing.T) {
	alice := uuid.New()
	house := uuid.New()

	in := &DisputeInput{
		Name:             "estate",
		ResolutionMethod: "bids",
		Agents:           []AgentInput{{ID: alice.String(), Name: "Alice", ShareOfEntitlement: 0.7}},
		Goods:            []GoodInput{{ID: house.String(), Name: "house", EstimatedValue: 100}},
		Bids:             []BidInput{{AgentID: alice.String(), GoodID: house.String(), Value: 42}},
		Restrictions:     []RestrictionInput{{AgentID: alice.String(), GoodID: house.String()}},
		BoundsPercentage: 0.1,
		RatingWeight:     1.2,
	}

	d, err := ToDispute(in)
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, d.ID)
	assert.Equal(t, loader.MethodBids, d.Method)
	require.Len(t, d.Agents, 1)
	assert.Equal(t, alice, d.Agents[0].ID)
	assert.Equal(t, 0.7, d.Agents[0].ShareOfEntitlement)
	require.Len(t, d.Bids, 1)
	assert.Equal(t, 42.0, d.Bids[0].Value)
	require.Len(t, d.Restrictions, 1)
	assert.Equal(t, 0.1, d.BoundsPercentage)
}

func TestToDispute_InvalidUUID(t *testing.T) {
	in := &DisputeInput{
		ResolutionMethod: "bids",
		Agents:           []AgentInput{{ID: "nope"}},
	}
	_, err := ToDispute(in)
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.ErrCodeDisputeInvalid))
	assert.Contains(t, err.Error(), "agent ID")
}

func TestNewModelOutput_TruncatesTinyFractions(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	house := uuid.New()

	d := &loader.Dispute{
		ID:     uuid.New(),
		Method: loader.MethodBids,
		Agents: []loader.Agent{{ID: alice, Name: "Alice"}, {ID: bob, Name: "Bob"}},
		Goods:  []loader.Good{{ID: house, Name: "house", EstimatedValue: 100}},
	}
	_, index, err := loader.BuildSolverInputs(&loader.Dispute{
		ID:     d.ID,
		Method: d.Method,
		Agents: d.Agents,
		Goods:  d.Goods,
		Bids:   []loader.Bid{{AgentID: alice, GoodID: house, Value: 10}, {AgentID: bob, GoodID: house, Value: 10}},
	})
	require.NoError(t, err)

	result, err := domain.NewAllocationResult(
		[][]float64{{1 - 1e-9}, {1e-9}},
		[]float64{10 * (1 - 1e-9), 1e-8},
		10,
		domain.StatusOptimal,
		3*time.Millisecond,
		nil,
	)
	require.NoError(t, err)

	out := NewModelOutput(d, index, "maxmin", result)

	// The 1e-9 sliver is dropped from the items but stays in the utilities.
	require.Len(t, out.Allocations, 1)
	assert.Equal(t, alice.String(), out.Allocations[0].AgentID)
	assert.Equal(t, "Alice", out.Allocations[0].AgentName)
	assert.Equal(t, "house", out.Allocations[0].GoodName)
	assert.Len(t, out.AgentUtilities, 2)
	assert.Equal(t, d.ID.String(), out.DisputeID)
	assert.Equal(t, int64(3), out.ComputationTimeMs)
}

func TestNewModelOutput_InfeasibleCarriesError(t *testing.T) {
	alice := uuid.New()
	house := uuid.New()
	d := &loader.Dispute{
		Method: loader.MethodBids,
		Agents: []loader.Agent{{ID: alice, Name: "Alice"}},
		Goods:  []loader.Good{{ID: house, Name: "house"}},
	}
	_, index, err := loader.BuildSolverInputs(&loader.Dispute{
		Method: d.Method,
		Agents: d.Agents,
		Goods:  d.Goods,
		Bids:   []loader.Bid{{AgentID: alice, GoodID: house, Value: 1}},
	})
	require.NoError(t, err)

	result := domain.NewInfeasibleResult(1, 1, time.Millisecond, "no feasible solution found")
	out := NewModelOutput(d, index, "nash", result)

	assert.Equal(t, "infeasible", out.SolverStatus)
	assert.Equal(t, "no feasible solution found", out.Error)
	assert.Empty(t, out.Allocations)
	assert.Empty(t, out.DisputeID)
}
