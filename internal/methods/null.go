// SPDX-License-Identifier: MPL-2.0

package methods

import (
	"context"

	"shipout-cli/internal/method"
)

// NullAction publishes nothing. It exists so the whole dispatch path can be
// exercised without side effects.
type NullAction struct{}

// Execute does nothing.
func (*NullAction) Execute(_ context.Context, env *method.Env) error {
	env.Logger.Info("null method: nothing to do")
	return nil
}
