package app

import (
	"go.uber.org/fx"

	"github.com/Alijeyrad/uat_backend/internal/events"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/service/questionsvc"
	"github.com/Alijeyrad/uat_backend/pkg/observability"
)

// ServiceModule provides the application services.
var ServiceModule = fx.Module("services",
	fx.Provide(ProvideQuestionService),
)

// ProvideQuestionService depends on the telemetry provider so the service's
// instruments are created after the global providers are installed.
func ProvideQuestionService(r repo.Repository, pub events.Publisher, _ *observability.Provider) questionsvc.Service {
	return questionsvc.New(r, pub)
}
