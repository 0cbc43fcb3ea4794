package common

import (
	"testing"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/azsqltools/sqlfault-go/throttling"
	"github.com/azsqltools/sqlfault-go/transient"
)

func TestThrottlingLogFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	logger.Info("throttling detected", ThrottlingLogFields(throttling.FromReasonCode(131075))...)

	entries := logs.All()
	require.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	require.Equal(t, "RejectAll", ctx["throttling_mode"])

	condition, ok := ctx["throttling_condition"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "RejectAll", condition["mode"])

	resources, ok := condition["resources"].([]any)
	require.True(t, ok)
	require.Len(t, resources, 9)

	cpu, ok := resources[4].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Cpu", cpu["resource"])
	require.Equal(t, "Hard", cpu["severity"])
}

func TestClassificationLogFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	throttled := transient.Classify(mssql.Error{
		Number:  throttling.ErrorNumber,
		Message: "The service is currently busy. Retry the request after 10 seconds. Code: 131075.",
	})
	logger.Info("query failed", ClassificationLogFields(throttled)...)

	plain := transient.Classify(mssql.Error{Number: 40613})
	logger.Info("query failed", ClassificationLogFields(plain)...)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	require.Equal(t, true, first["transient"])
	require.Equal(t, "RejectAll", first["throttling_mode"])
	require.Contains(t, first, "throttling_condition")

	second := entries[1].ContextMap()
	require.Equal(t, true, second["transient"])
	require.NotContains(t, second, "throttling_mode")
	require.NotContains(t, second, "throttling_condition")
}
