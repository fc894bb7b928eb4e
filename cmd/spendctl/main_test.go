package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"spendbook/config"
	"spendbook/database"
	"spendbook/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	api     string
	session string
}

func newHarness(t *testing.T) *harness {
	store, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	r, err := router.SetupRouter(&config.Config{Server: config.ServerConfig{Port: "4000", Mode: gin.TestMode}}, store)
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &harness{
		t:       t,
		api:     srv.URL,
		session: filepath.Join(t.TempDir(), "session.json"),
	}
}

func (h *harness) run(stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	full := append([]string{"-api", h.api, "-session", h.session}, args...)
	err := run(context.Background(), full, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (h *harness) mustRun(stdin string, args ...string) string {
	h.t.Helper()
	stdout, stderr, err := h.run(stdin, args...)
	require.NoError(h.t, err, "stderr: %s", stderr)
	return stdout
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), nil, strings.NewReader(""), &stdout, &stderr)
	assert.EqualError(t, err, "missing command")
	assert.Contains(t, stdout.String(), "Usage: spendctl")

	stdout.Reset()
	err = run(context.Background(), []string{"-session", filepath.Join(t.TempDir(), "s.json"), "frobnicate"}, strings.NewReader(""), &stdout, &stderr)
	assert.EqualError(t, err, `unknown command "frobnicate"`)

	err = run(context.Background(), []string{"-h"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, flag.ErrHelp, err)
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer

	assert.Equal(t, 0, exitCode(nil, &stderr))
	assert.Equal(t, 0, exitCode(flag.ErrHelp, &stderr))
	assert.Equal(t, 0, exitCode(fmt.Errorf("parsing list flags: %w", flag.ErrHelp), &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, 1, exitCode(errNotSignedIn, &stderr))
	assert.Equal(t, "Error: "+errNotSignedIn.Error()+"\n", stderr.String())
}

func TestRun_RequiresLogin(t *testing.T) {
	h := newHarness(t)

	for _, cmd := range []string{"list", "summary", "whoami", "add", "delete"} {
		_, _, err := h.run("", cmd)
		assert.ErrorIs(t, err, errNotSignedIn, cmd)
	}

	// not gated
	out := h.mustRun("", "health")
	assert.True(t, strings.HasPrefix(out, "OK "))

	out = h.mustRun("", "categories")
	assert.Equal(t, "Food\nTransport\nEntertainment\nShopping\nBills\nHealth\nOther\n", out)
}

func TestRun_SignupLoginLogout(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("hunter2\n", "signup", "-email", "ana@example.com", "-name", "Ana")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Account created successfully! Welcome, Ana")

	assert.Equal(t, "Ana <ana@example.com>\n", h.mustRun("", "whoami"))

	_, _, err := h.run("", "signup", "-email", "ana@example.com", "-name", "Ana", "-password", "other")
	assert.EqualError(t, err, "user already exists")

	assert.Equal(t, "Logged out successfully\n", h.mustRun("", "logout"))
	_, _, err = h.run("", "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)

	_, _, err = h.run("wrong\n", "login", "-email", "ana@example.com")
	assert.EqualError(t, err, "invalid credentials")

	out = h.mustRun("", "login", "-email", "ana@example.com", "-password", "hunter2")
	assert.Contains(t, out, "Logged in successfully! Welcome, Ana")
}

func TestRun_SignupValidation(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("", "signup", "-email", "ana@example.com")
	assert.EqualError(t, err, "missing required flags: email, name")

	_, _, err = h.run("\n", "signup", "-email", "ana@example.com", "-name", "Ana")
	assert.EqualError(t, err, "password cannot be empty")

	_, _, err = h.run("", "login", "-email", "ana@example.com")
	assert.ErrorContains(t, err, "failed to read password")
}

func TestRun_ExpenseLifecycle(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "signup", "-email", "ana@example.com", "-name", "Ana", "-password", "pw")

	assert.Equal(t, "No expenses found\n", h.mustRun("", "list"))

	out := h.mustRun("", "add", "-title", "Coffee", "-amount", "4.5", "-category", "Food", "-date", "2024-01-15")
	assert.Contains(t, out, "Expense added successfully")
	coffeeID := lastLine(out)
	require.NotEmpty(t, coffeeID)

	h.mustRun("", "add", "-title", "Bus", "-amount", "12", "-category", "Transport", "-date", "2024-02-01")
	h.mustRun("", "add", "-title", "Lunch", "-amount", "10.5", "-category", "Food", "-date", "2024-02-03")

	out = h.mustRun("", "list")
	assert.Contains(t, out, "Total: $27.00 (3 transactions)")
	// newest first
	assert.Less(t, strings.Index(out, "Lunch"), strings.Index(out, "Bus"))
	assert.Less(t, strings.Index(out, "Bus"), strings.Index(out, "Coffee"))

	out = h.mustRun("", "list", "-category", "Food")
	assert.Contains(t, out, "Total: $15.00 (2 transactions)")
	assert.NotContains(t, out, "Bus")

	out = h.mustRun("", "list", "-month", "2024-02")
	assert.Contains(t, out, "Total: $22.50 (2 transactions)")
	assert.NotContains(t, out, "Coffee")

	out = h.mustRun("", "summary")
	assert.Contains(t, out, "Total Expenses: $27.00")
	assert.Contains(t, out, "3 transactions")
	assert.Regexp(t, `Food\s+\$15\.00\s+56%`, out)
	assert.Regexp(t, `Transport\s+\$12\.00\s+44%`, out)

	out = h.mustRun("", "summary", "-category", "Health")
	assert.Contains(t, out, "Total Expenses: $0.00")
	assert.Contains(t, out, "No data available for chart")

	out = h.mustRun("", "edit", "-id", coffeeID, "-amount", "6")
	assert.Contains(t, out, "Expense updated successfully")
	out = h.mustRun("", "list", "-category", "Food")
	assert.Contains(t, out, "Total: $16.50 (2 transactions)")
	assert.Contains(t, out, "Coffee")

	out = h.mustRun("", "delete", "-id", coffeeID)
	assert.Contains(t, out, "Expense deleted successfully")
	out = h.mustRun("", "list")
	assert.Contains(t, out, "Total: $22.50 (2 transactions)")
	assert.NotContains(t, out, "Coffee")
}

func TestRun_ExpenseErrors(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "signup", "-email", "ana@example.com", "-name", "Ana", "-password", "pw")

	_, _, err := h.run("", "add", "-title", "Coffee", "-category", "Food")
	assert.EqualError(t, err, "Amount must be positive")

	_, _, err = h.run("", "list", "-month", "2024-1")
	assert.EqualError(t, err, "month must be formatted as YYYY-MM")

	_, stderr, err := h.run("", "delete", "-id", "00000000-0000-0000-0000-000000000000")
	assert.EqualError(t, err, "Expense not found")
	assert.Contains(t, stderr, "Failed to delete expense")

	_, _, err = h.run("", "edit", "-id", "00000000-0000-0000-0000-000000000000", "-title", "x")
	assert.EqualError(t, err, "Expense not found")

	_, _, err = h.run("", "delete")
	assert.Error(t, err)
}
