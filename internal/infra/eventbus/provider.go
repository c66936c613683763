package eventbus

import (
	"link-catalog/internal/domain"

	"github.com/google/wire"
)

// ProviderSet is eventbus providers.
var ProviderSet = wire.NewSet(
	NewKratosLoggerAdapter,
	NewEventBus,
	NewRouter,
	wire.Bind(new(domain.EventPublisher), new(*EventBus)),
)
