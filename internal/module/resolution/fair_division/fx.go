package fair_division

import (
	"fairdivisiondss/internal/module/resolution/fair_division/service"

	"go.uber.org/fx"
)

// Module exports the fair division module for dependency injection
// Following the MBMS pattern: Model -> Service
// Note: the model is provided by models.Module centrally
var Module = fx.Module("fair_division",
	fx.Provide(
		service.NewService,
	),
)
