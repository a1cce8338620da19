package resolution

import (
	"fairdivisiondss/internal/module/resolution/fair_division"
	"fairdivisiondss/internal/module/resolution/models"

	"go.uber.org/fx"
)

// Module provides the dispute resolution services: the computational models
// and the service wrappers around them.
var Module = fx.Module("resolution",
	models.Module,
	fair_division.Module,
)
