package dto

import (
	"fmt"

	"github.com/google/uuid"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
	"fairdivisiondss/internal/module/resolution/models/fair_division/loader"
	"fairdivisiondss/internal/shared"
)

// Allocation fractions below this are omitted from response items. Purely
// presentational: it runs after the result invariants have been checked.
const displayCutoff = 1e-6

// ToDispute converts the request aggregate to the loader's domain form.
func ToDispute(in *DisputeInput) (*loader.Dispute, error) {
	disputeID, err := parseOptionalID(in.ID, "dispute")
	if err != nil {
		return nil, err
	}

	d := &loader.Dispute{
		ID:               disputeID,
		Name:             in.Name,
		Method:           loader.ResolutionMethod(in.ResolutionMethod),
		BoundsPercentage: in.BoundsPercentage,
		RatingWeight:     in.RatingWeight,
	}

	for _, agent := range in.Agents {
		id, err := parseID(agent.ID, "agent")
		if err != nil {
			return nil, err
		}
		d.Agents = append(d.Agents, loader.Agent{
			ID:                 id,
			Name:               agent.Name,
			ShareOfEntitlement: agent.ShareOfEntitlement,
		})
	}

	for _, good := range in.Goods {
		id, err := parseID(good.ID, "good")
		if err != nil {
			return nil, err
		}
		d.Goods = append(d.Goods, loader.Good{
			ID:             id,
			Name:           good.Name,
			EstimatedValue: good.EstimatedValue,
		})
	}

	for _, bid := range in.Bids {
		agentID, err := parseID(bid.AgentID, "bid agent")
		if err != nil {
			return nil, err
		}
		goodID, err := parseID(bid.GoodID, "bid good")
		if err != nil {
			return nil, err
		}
		d.Bids = append(d.Bids, loader.Bid{AgentID: agentID, GoodID: goodID, Value: bid.Value})
	}

	for _, rating := range in.Ratings {
		agentID, err := parseID(rating.AgentID, "rating agent")
		if err != nil {
			return nil, err
		}
		goodID, err := parseID(rating.GoodID, "rating good")
		if err != nil {
			return nil, err
		}
		d.Ratings = append(d.Ratings, loader.Rating{AgentID: agentID, GoodID: goodID, Stars: rating.Stars})
	}

	for _, restriction := range in.Restrictions {
		agentID, err := parseID(restriction.AgentID, "restriction agent")
		if err != nil {
			return nil, err
		}
		goodID, err := parseID(restriction.GoodID, "restriction good")
		if err != nil {
			return nil, err
		}
		d.Restrictions = append(d.Restrictions, loader.Restriction{AgentID: agentID, GoodID: goodID})
	}

	return d, nil
}

// NewModelOutput maps a solver result back to identifiers through the index.
func NewModelOutput(
	d *loader.Dispute,
	index *loader.Index,
	method string,
	result *domain.AllocationResult,
) *FairDivisionModelOutput {
	agentNames := make(map[uuid.UUID]string, len(d.Agents))
	for _, agent := range d.Agents {
		agentNames[agent.ID] = agent.Name
	}
	goodNames := make(map[uuid.UUID]string, len(d.Goods))
	for _, good := range d.Goods {
		goodNames[good.ID] = good.Name
	}

	out := &FairDivisionModelOutput{
		Method:            method,
		SolverStatus:      string(result.SolverStatus),
		ObjectiveValue:    result.ObjectiveValue,
		ComputationTimeMs: result.SolveTime.Milliseconds(),
		Allocations:       make([]AllocationItem, 0),
		AgentUtilities:    make(map[string]float64, len(index.AgentIDs)),
	}
	if d.ID != uuid.Nil {
		out.DisputeID = d.ID.String()
	}
	if reason, ok := result.Metadata["error"].(string); ok {
		out.Error = reason
	}

	for i, agentID := range index.AgentIDs {
		out.AgentUtilities[agentID.String()] = result.Utilities[i]
		for j, goodID := range index.GoodIDs {
			fraction := result.Allocation[i][j]
			if fraction <= displayCutoff {
				continue
			}
			out.Allocations = append(out.Allocations, AllocationItem{
				AgentID:   agentID.String(),
				AgentName: agentNames[agentID],
				GoodID:    goodID.String(),
				GoodName:  goodNames[goodID],
				Fraction:  fraction,
			})
		}
	}

	return out
}

// NewFairnessOutput summarizes a report for the response.
func NewFairnessOutput(report *domain.FairnessReport, reportText string) *FairnessOutput {
	return &FairnessOutput{
		IsEnvyFree:            report.IsEnvyFree,
		MaxEnvy:               report.MaxEnvy,
		IsProportional:        report.IsProportional,
		IsParetoEfficient:     report.IsParetoEfficient,
		IsSymmetricInstance:   report.IsSymmetricInstance,
		IsSymmetricAllocation: report.IsSymmetricAllocation,
		TotalUtility:          report.TotalUtility,
		NashWelfare:           report.NashWelfare,
		MinUtility:            report.MinUtility,
		Gini:                  report.Summary.Gini,
		OverallScore:          report.Summary.OverallScore,
		ReportText:            reportText,
	}
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.NewDisputeInvalid(
			fmt.Sprintf("%s ID %q is not a valid UUID", field, raw)).WithError(err)
	}
	return id, nil
}

func parseOptionalID(raw, field string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return parseID(raw, field)
}
