package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fairdivisiondss/internal/module/resolution/fair_division/dto"
	fair_division "fairdivisiondss/internal/module/resolution/models/fair_division"
)

// Sink receives computed solutions. Persistence itself lives outside this
// module; a nil sink simply drops the results.
type Sink interface {
	StoreSolution(ctx context.Context, disputeID, method string, output *dto.FairDivisionModelOutput) error
}

// Service interface for fair division operations
type Service interface {
	// Resolve runs one solver over the dispute.
	Resolve(ctx context.Context, input *dto.FairDivisionModelInput) (*dto.FairDivisionModelOutput, error)

	// Compare runs MaxMin and Nash concurrently and reports both.
	Compare(ctx context.Context, input *dto.FairDivisionModelInput) (*dto.ComparisonOutput, error)
}

// service implements Service using the MBMS pattern
type service struct {
	model  *fair_division.FairDivisionModel
	logger *zap.Logger
	sink   Sink
}

// NewService creates a new fair division service
func NewService(model *fair_division.FairDivisionModel, logger *zap.Logger) Service {
	return &service{model: model, logger: logger}
}

// NewServiceWithSink creates a service that forwards solutions to a sink.
func NewServiceWithSink(model *fair_division.FairDivisionModel, logger *zap.Logger, sink Sink) Service {
	return &service{model: model, logger: logger, sink: sink}
}

func (s *service) Resolve(ctx context.Context, input *dto.FairDivisionModelInput) (*dto.FairDivisionModelOutput, error) {
	s.logger.Info("Executing fair division model",
		zap.String("dispute", input.Dispute.Name),
		zap.String("method", input.Method),
		zap.Int("agents", len(input.Dispute.Agents)),
		zap.Int("goods", len(input.Dispute.Goods)))

	if err := s.model.Validate(ctx, input); err != nil {
		s.logger.Error("Fair division validation failed", zap.Error(err))
		return nil, err
	}

	result, err := s.model.Execute(ctx, input)
	if err != nil {
		s.logger.Error("Fair division execution failed", zap.Error(err))
		return nil, err
	}

	output := result.(*dto.FairDivisionModelOutput)

	s.logger.Info("Fair division execution completed",
		zap.String("method", output.Method),
		zap.String("status", output.SolverStatus),
		zap.Float64("objective", output.ObjectiveValue),
		zap.Int64("computation_time_ms", output.ComputationTimeMs))

	if s.sink != nil {
		if err := s.sink.StoreSolution(ctx, output.DisputeID, output.Method, output); err != nil {
			s.logger.Error("Failed to store solution", zap.Error(err))
			return nil, err
		}
	}

	return output, nil
}

func (s *service) Compare(ctx context.Context, input *dto.FairDivisionModelInput) (*dto.ComparisonOutput, error) {
	comparison := &dto.ComparisonOutput{}

	// Each branch owns its own solver state, so the two solves are free to
	// run in parallel.
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		branch := *input
		branch.Method = "maxmin"
		output, err := s.Resolve(ctx, &branch)
		if err != nil {
			return err
		}
		comparison.MaxMin = output
		return nil
	})

	g.Go(func() error {
		branch := *input
		branch.Method = "nash"
		output, err := s.Resolve(ctx, &branch)
		if err != nil {
			return err
		}
		comparison.Nash = output
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	comparison.DisputeID = comparison.MaxMin.DisputeID
	return comparison, nil
}
