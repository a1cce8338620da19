package dto

// AgentInput is one participant in a dispute request.
type AgentInput struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	ShareOfEntitlement float64 `json:"share_of_entitlement,omitempty"`
}

// GoodInput is one divisible item in a dispute request.
type GoodInput struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	EstimatedValue float64 `json:"estimated_value"`
}

// BidInput is an agent's monetary valuation of a good.
type BidInput struct {
	AgentID string  `json:"agent_id"`
	GoodID  string  `json:"good_id"`
	Value   float64 `json:"value"`
}

// RatingInput is an agent's 1-5 star valuation of a good.
type RatingInput struct {
	AgentID string `json:"agent_id"`
	GoodID  string `json:"good_id"`
	Stars   int    `json:"stars"`
}

// RestrictionInput forbids an agent from receiving a good.
type RestrictionInput struct {
	AgentID string `json:"agent_id"`
	GoodID  string `json:"good_id"`
}

// DisputeInput is the request-side dispute aggregate.
type DisputeInput struct {
	ID               string             `json:"id,omitempty"`
	Name             string             `json:"name"`
	ResolutionMethod string             `json:"resolution_method"`
	Agents           []AgentInput       `json:"agents"`
	Goods            []GoodInput        `json:"goods"`
	Bids             []BidInput         `json:"bids,omitempty"`
	Ratings          []RatingInput      `json:"ratings,omitempty"`
	Restrictions     []RestrictionInput `json:"restrictions,omitempty"`
	BoundsPercentage float64            `json:"bounds_percentage,omitempty"`
	RatingWeight     float64            `json:"rating_weight,omitempty"`
}

// FairDivisionModelInput is the model request: a dispute, the allocation
// method and the solver knobs.
type FairDivisionModelInput struct {
	Dispute DisputeInput `json:"dispute"`

	// Method is "maxmin" or "nash".
	Method string `json:"method"`

	// RunDiagnostics adds a fairness report to the output.
	RunDiagnostics bool `json:"run_diagnostics,omitempty"`

	// Epsilon overrides the utility positivity floor. Zero keeps the default.
	Epsilon float64 `json:"epsilon,omitempty"`

	// TimeLimitSeconds bounds the engine call. Zero keeps the default.
	TimeLimitSeconds float64 `json:"time_limit_seconds,omitempty"`

	// MaxIterations bounds the NLP engine. Zero keeps the default.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Engine selects the LP engine by name. Empty keeps the default.
	Engine string `json:"engine,omitempty"`
}

// AllocationItem is one non-zero assignment in the response.
type AllocationItem struct {
	AgentID   string  `json:"agent_id"`
	AgentName string  `json:"agent_name,omitempty"`
	GoodID    string  `json:"good_id"`
	GoodName  string  `json:"good_name,omitempty"`
	Fraction  float64 `json:"fraction"`
}

// FairnessOutput is the response-side fairness summary.
type FairnessOutput struct {
	IsEnvyFree            bool    `json:"is_envy_free"`
	MaxEnvy               float64 `json:"max_envy"`
	IsProportional        bool    `json:"is_proportional"`
	IsParetoEfficient     bool    `json:"is_pareto_efficient"`
	IsSymmetricInstance   bool    `json:"is_symmetric_instance"`
	IsSymmetricAllocation bool    `json:"is_symmetric_allocation"`
	TotalUtility          float64 `json:"total_utility"`
	NashWelfare           float64 `json:"nash_welfare"`
	MinUtility            float64 `json:"min_utility"`
	Gini                  float64 `json:"gini"`
	OverallScore          string  `json:"overall_score"`
	ReportText            string  `json:"report_text,omitempty"`
}

// FairDivisionModelOutput is the model response for one method.
type FairDivisionModelOutput struct {
	DisputeID         string             `json:"dispute_id,omitempty"`
	Method            string             `json:"method"`
	SolverStatus      string             `json:"solver_status"`
	ObjectiveValue    float64            `json:"objective_value"`
	ComputationTimeMs int64              `json:"computation_time_ms"`
	Allocations       []AllocationItem   `json:"allocations"`
	AgentUtilities    map[string]float64 `json:"agent_utilities"`
	Error             string             `json:"error,omitempty"`
	Fairness          *FairnessOutput    `json:"fairness,omitempty"`
}

// ComparisonOutput carries both methods side by side.
type ComparisonOutput struct {
	DisputeID string                   `json:"dispute_id,omitempty"`
	MaxMin    *FairDivisionModelOutput `json:"maxmin"`
	Nash      *FairDivisionModelOutput `json:"nash"`
}
