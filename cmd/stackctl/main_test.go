package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/supplementstack/internal/api"
	"example.com/supplementstack/internal/auth"
	"example.com/supplementstack/internal/config"
	"example.com/supplementstack/internal/domain"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.PathEnvVar, "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const lifterYAML = `
age: 28
gender: male
goals: [weight lifting]
budget_monthly: 100
activity_level: active
`

func TestResolveYAMLProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lifterYAML), 0o600))

	out, err := run(t, "", "resolve", "--profile", path)
	require.NoError(t, err)

	var stack domain.RecommendationStack
	require.NoError(t, json.Unmarshal([]byte(out), &stack))
	require.Equal(t, domain.SourceCached, stack.Source)
	require.LessOrEqual(t, stack.TotalMonthlyCost, domain.DollarsToCents(100))
}

func TestResolveJSONFromStdinWithExplain(t *testing.T) {
	body := `{"age":40,"gender":"female","goals":["better sleep"],"budget_monthly":25,"activity_level":"light"}`
	out, err := run(t, body, "resolve", "--explain", "--profile", "-")
	require.NoError(t, err)

	var view api.ExplainedView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, "start", view.States[0])
	require.Equal(t, "resolved", view.States[len(view.States)-1])
	require.LessOrEqual(t, view.Stack.TotalMonthlyCost, domain.DollarsToCents(25))
}

func TestResolveRejectsInvalidProfile(t *testing.T) {
	_, err := run(t, "age: 5\ngender: male\nactivity_level: active\n", "resolve")
	require.ErrorContains(t, err, "profile rejected")

	_, err = run(t, "shoe_size: 11\n", "resolve")
	require.ErrorContains(t, err, "decode profile")
}

func TestCatalogList(t *testing.T) {
	out, err := run(t, "", "catalog", "list", "--goal", "Weight Lifting")
	require.NoError(t, err)
	require.Contains(t, out, "goal: muscle-building")
	require.Contains(t, out, "creatine-monohydrate")
	require.Contains(t, out, "essential")
}

func TestCatalogSeedRequiresPostgres(t *testing.T) {
	_, err := run(t, "", "catalog", "seed")
	require.ErrorContains(t, err, "catalog.store=postgres")
}

func TestTokenIsAccepted(t *testing.T) {
	out, err := run(t, "", "token", "--subject", "ops", "--scope", auth.ScopeCatalogAdmin)
	require.NoError(t, err)

	cfg := config.Default()
	claims, err := auth.Parse(strings.TrimSpace(out), auth.Config{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.JWTIssuer})
	require.NoError(t, err)
	require.Equal(t, "ops", claims.Subject)
	require.True(t, claims.HasScope(auth.ScopeCatalogAdmin))
	require.False(t, claims.HasScope(auth.ScopeCatalogRead))
}
