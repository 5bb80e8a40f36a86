package preflight

import (
	"context"
	"fmt"

	"logwatch/internal/logs"
)

// CheckServer queries /health on the server bound at bind.
func CheckServer(ctx context.Context, bind string) Result {
	const name = "Server"

	client, err := logs.NewStreamClient(bind)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid bind %q (%v)", bind, err)}
	}
	if client == nil {
		return Result{Name: name, Detail: "Missing bind address"}
	}
	health, err := client.Health(ctx)
	if err != nil {
		if logs.IsAPIUnavailable(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (not running)", bind)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", bind, err)}
	}
	return Result{
		Name:   name,
		Passed: health.Status == "ok",
		Detail: fmt.Sprintf("%s (%s, %d viewers, position %d)", bind, health.Status, health.Clients, health.Position),
	}
}
