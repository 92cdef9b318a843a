package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/budget/internal/activity"
	"github.com/cleared-dev/budget/internal/config"
	"github.com/cleared-dev/budget/internal/ledger"
)

// runBudget executes the root command in-process and returns stdout.
func runBudget(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runBudgetStderr(t, args...)
	return out, err
}

// runBudgetStderr is runBudget that also returns stderr (log output).
func runBudgetStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// initBudget creates a USD budget in a temp dir and returns the config path.
func initBudget(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runBudget(t, "init", dir, "--currency", "USD")
	require.NoError(t, err)
	return filepath.Join(dir, config.FileName)
}

func readLedger(t *testing.T, cfgPath string) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Load(filepath.Join(filepath.Dir(cfgPath), "budget_data.txt"))
	require.NoError(t, err)
	return l
}

func TestInit_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := runBudget(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized budget at")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "INR", cfg.Currency)

	data, err := os.ReadFile(filepath.Join(dir, "budget_data.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0.00\n", string(data))
}

func TestInit_KeepsExistingLedger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget_data.txt")
	require.NoError(t, os.WriteFile(path, []byte("5.00\nIncome: tip | +5.00\n"), 0o644))

	_, err := runBudget(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Income: tip")
}

func TestAddAndList(t *testing.T) {
	cfgPath := initBudget(t)

	out, err := runBudget(t, "--config", cfgPath, "income", "salary", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: $100.00")

	out, err = runBudget(t, "--config", cfgPath, "expense", "groceries", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: $60.00")
	assert.Contains(t, out, "1. Income: salary | +$100.00")
	assert.Contains(t, out, "2. Expense: groceries | -$40.00")

	out, err = runBudget(t, "--config", cfgPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: $60.00")

	l := readLedger(t, cfgPath)
	assert.Equal(t, 2, l.Len())
}

func TestAdd_Invalid(t *testing.T) {
	cfgPath := initBudget(t)

	_, err := runBudget(t, "--config", cfgPath, "income", "", "50")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrValidation)
	assert.Equal(t, "description is required", err.Error())

	_, err = runBudget(t, "--config", cfgPath, "income", "gift", "--", "-5")
	require.Error(t, err)
	assert.Equal(t, "invalid amount", err.Error())

	_, err = runBudget(t, "--config", cfgPath, "expense", "lunch", "twelve")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrValidation)

	l := readLedger(t, cfgPath)
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Balance().IsZero())
}

func TestUpdateAndDelete(t *testing.T) {
	cfgPath := initBudget(t)
	_, err := runBudget(t, "--config", cfgPath, "expense", "old", "200")
	require.NoError(t, err)
	_, err = runBudget(t, "--config", cfgPath, "income", "salary", "1000")
	require.NoError(t, err)

	out, err := runBudget(t, "--config", cfgPath, "update", "1", "rent", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: $500.00")
	assert.Contains(t, out, "1. Expense: rent | -$500.00")

	out, err = runBudget(t, "--config", cfgPath, "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: -$500.00")
	assert.NotContains(t, out, "salary")
}

func TestDelete_OutOfRange(t *testing.T) {
	cfgPath := initBudget(t)
	for _, d := range []string{"a", "b", "c"} {
		_, err := runBudget(t, "--config", cfgPath, "income", d, "1")
		require.NoError(t, err)
	}
	before, err := os.ReadFile(filepath.Join(filepath.Dir(cfgPath), "budget_data.txt"))
	require.NoError(t, err)

	_, err = runBudget(t, "--config", cfgPath, "delete", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrIndex)
	assert.Equal(t, "no transaction #5 (ledger has 3)", err.Error())

	_, err = runBudget(t, "--config", cfgPath, "update", "x", "a", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid entry number")

	after, err := os.ReadFile(filepath.Join(filepath.Dir(cfgPath), "budget_data.txt"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestCorruptLedger(t *testing.T) {
	cfgPath := initBudget(t)
	path := filepath.Join(filepath.Dir(cfgPath), "budget_data.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a balance\n"), 0o644))

	_, err := runBudget(t, "--config", cfgPath, "income", "salary", "100")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrFormat)
	assert.True(t, strings.HasPrefix(err.Error(), "ledger file is corrupt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not a balance\n", string(data), "corrupt file left untouched")
}

func TestLegacyFloatNoiseBalance(t *testing.T) {
	cfgPath := initBudget(t)
	path := filepath.Join(filepath.Dir(cfgPath), "budget_data.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.30000000000000004\nIncome: a | +₹0.1\nIncome: b | +₹0.2\n"), 0o644))

	out, stderr, err := runBudgetStderr(t, "--config", cfgPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: $0.30")
	assert.Contains(t, stderr, "level=WARN")
	assert.Contains(t, stderr, "stored=0.30000000000000004")

	// The next save writes the recomputed balance and the warning goes away.
	_, err = runBudget(t, "--config", cfgPath, "expense", "c", "0.1")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "0.20\n"), "got %q", data)

	_, stderr, err = runBudgetStderr(t, "--config", cfgPath, "list")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "level=WARN")
}

func TestAdd_HugeExponentRejected(t *testing.T) {
	cfgPath := initBudget(t)

	_, err := runBudget(t, "--config", cfgPath, "income", "lottery", "1e99999999")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrValidation)
	assert.Contains(t, err.Error(), "invalid amount")
	assert.Equal(t, 0, readLedger(t, cfgPath).Len())
}

func TestFileFlagOverridesConfig(t *testing.T) {
	cfgPath := initBudget(t)
	other := filepath.Join(t.TempDir(), "other.txt")

	_, err := runBudget(t, "--config", cfgPath, "--file", other, "income", "bonus", "7.25")
	require.NoError(t, err)

	l, err := ledger.Load(other)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, readLedger(t, cfgPath).Len())
}

func TestActivityLog(t *testing.T) {
	cfgPath := initBudget(t)
	_, err := runBudget(t, "--config", cfgPath, "income", "salary", "100")
	require.NoError(t, err)
	_, err = runBudget(t, "--config", cfgPath, "delete", "1")
	require.NoError(t, err)
	_, err = runBudget(t, "--config", cfgPath, "delete", "1")
	require.Error(t, err, "failed commands are not logged")

	entries, err := activity.Read(filepath.Dir(cfgPath))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, activity.ActionAdd, entries[0].Action)
	assert.True(t, entries[0].Balance.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, activity.ActionDelete, entries[1].Action)
	assert.True(t, entries[1].Balance.IsZero())

	out, err := runBudget(t, "--config", cfgPath, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "ACTION")
	assert.Contains(t, out, "salary")
}

func TestActivityLog_Disabled(t *testing.T) {
	cfgPath := initBudget(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Activity.Enabled = false
	require.NoError(t, config.Save(cfgPath, cfg))

	_, err = runBudget(t, "--config", cfgPath, "income", "salary", "100")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(filepath.Dir(cfgPath), activity.FileName))
	assert.True(t, os.IsNotExist(err))

	out, err := runBudget(t, "--config", cfgPath, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "(no activity)")
}

func TestImportAndExport(t *testing.T) {
	cfgPath := initBudget(t)
	dir := filepath.Dir(cfgPath)

	chase := filepath.Join(dir, "chase.csv")
	require.NoError(t, os.WriteFile(chase, []byte(
		"Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"+
			"CREDIT,01/15/2025,ACME INVOICE,3500.00,ACH_CREDIT,3496.00,\n"+
			"DEBIT,01/03/2025,GITHUB,-4.00,ACH_DEBIT,-4.00,\n"), 0o644))

	out, err := runBudget(t, "--config", cfgPath, "import", chase)
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: $3,496.00")
	assert.Contains(t, out, "1. Expense: GITHUB | -$4.00")

	exported := filepath.Join(dir, "out.csv")
	out, err = runBudget(t, "--config", cfgPath, "export", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 entries")

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, "kind,description,amount\nexpense,GITHUB,4.00\nincome,ACME INVOICE,3500.00\n", string(data))

	// Re-importing our own export into a fresh ledger reproduces it.
	other := filepath.Join(t.TempDir(), "copy.txt")
	_, err = runBudget(t, "--config", cfgPath, "--file", other, "import", exported, "--format", "budget")
	require.NoError(t, err)
	l, err := ledger.Load(other)
	require.NoError(t, err)
	assert.Equal(t, readLedger(t, cfgPath).Serialize(), l.Serialize())

	out, err = runBudget(t, "--config", cfgPath, "export", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, ledger.CSVHeader))
}

func TestImport_UnknownFormat(t *testing.T) {
	cfgPath := initBudget(t)
	_, err := runBudget(t, "--config", cfgPath, "import", "whatever.csv", "--format", "ofx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "ofx" (known: budget, chase)`)
}

func TestMissingConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)

	out, err := runBudget(t, "--config", cfgPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Balance: ₹0.00")
	assert.Contains(t, out, "(no transactions)")
}
