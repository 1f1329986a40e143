package state_test

import (
	"context"
	"testing"

	"cssel/state"
)

func TestEnvRoundTrip(t *testing.T) {
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	if env == nil {
		t.Fatal("expected environment in context")
	}
	if env.Uptime() < 0 {
		t.Error("uptime went backwards")
	}
}

func TestEnvFromContext_PanicsWithoutEnv(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for context without environment")
		}
	}()
	state.EnvFromContext(context.Background())
}

func TestStdLogRedirect_NoLogger(t *testing.T) {
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)

	// both must be safe without a prepared logger
	env.RedirectStdLog()
	env.RestoreStdLog()
}
