package models

import (
	fair_division "fairdivisiondss/internal/module/resolution/models/fair_division"

	"go.uber.org/fx"
)

// Module provides all core computational models
var Module = fx.Module("models",
	fx.Provide(
		fair_division.NewFairDivisionModel,
	),
)
