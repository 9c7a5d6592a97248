package testutil

import (
	"context"

	"github.com/flexprice/invoice-dashboard/internal/types"
)

func SetupContext() context.Context {
	return types.SetRequestID(context.Background(), types.GenerateUUID())
}
