package main

import (
	"context"
	"testing"

	"go.uber.org/fx/fxtest"
)

type closingGenerator struct {
	closed int
}

func (g *closingGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (g *closingGenerator) Name() string { return "closing" }

func (g *closingGenerator) Close() error {
	g.closed++
	return nil
}

type plainGenerator struct{}

func (plainGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (plainGenerator) Name() string { return "plain" }

func TestCloseTextGeneratorOnStop(t *testing.T) {
	gen := &closingGenerator{}
	lc := fxtest.NewLifecycle(t)
	CloseTextGeneratorOnStop(lc, gen)

	lc.RequireStart()
	if gen.closed != 0 {
		t.Fatalf("generator closed on start")
	}
	lc.RequireStop()
	if gen.closed != 1 {
		t.Errorf("generator closed %d times, want 1", gen.closed)
	}
}

func TestCloseTextGeneratorOnStopSkipsNonClosers(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	CloseTextGeneratorOnStop(lc, plainGenerator{})
	lc.RequireStart().RequireStop()
}
