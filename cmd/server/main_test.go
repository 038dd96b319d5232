package main

import (
	"testing"

	fxmodules "footy-tipping/internal/fx"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestAppGraph(t *testing.T) {
	err := fx.ValidateApp(
		fxmodules.Module,
		fx.Invoke(runServer),
	)
	require.NoError(t, err)
}
