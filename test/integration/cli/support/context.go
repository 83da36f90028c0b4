// Package support provides the shared scenario context and step
// definitions for the CLI integration suite.
package support

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"

	"github.com/compliscan/compliscan/cmd/compliscan/cmd"
	"github.com/compliscan/compliscan/internal/testutil"
)

// TestContext carries state between the steps of one scenario.
type TestContext struct {
	workDir string

	inputPath string
	stdout    bytes.Buffer
	runErr    error
	fields    map[string]interface{}
}

// NewTestContext creates a scenario context with a private work directory.
func NewTestContext() (*TestContext, error) {
	dir, err := os.MkdirTemp("", "compliscan-cli-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	return &TestContext{workDir: dir}, nil
}

// Cleanup removes the scenario work directory.
func (tc *TestContext) Cleanup() error {
	return os.RemoveAll(tc.workDir)
}

// run executes the CLI in-process with the given arguments.
func (tc *TestContext) run(args ...string) {
	tc.stdout.Reset()
	root := cmd.GetRootCommand()
	root.SetOut(&tc.stdout)
	root.SetErr(&tc.stdout)
	root.SetArgs(args)
	tc.runErr = root.Execute()
}

// RegisterCommonSteps wires the generic CLI steps.
func (tc *TestContext) RegisterCommonSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I run the CLI with "([^"]*)"$`, tc.iRunTheCLIWith)
	sc.Step(`^the command succeeds$`, tc.theCommandSucceeds)
	sc.Step(`^the command fails$`, tc.theCommandFails)
	sc.Step(`^the output contains "([^"]*)"$`, tc.theOutputContains)
}

// RegisterParseSteps wires the field extraction steps.
func (tc *TestContext) RegisterParseSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a text file containing the sample receipt$`, tc.aTextFileContainingTheSampleReceipt)
	sc.Step(`^a text file containing "([^"]*)"$`, tc.aTextFileContaining)
	sc.Step(`^I run the parse command on it$`, tc.iRunTheParseCommandOnIt)
	sc.Step(`^the output field "([^"]*)" is "([^"]*)"$`, tc.theOutputFieldIs)
	sc.Step(`^the output field "([^"]*)" is null$`, tc.theOutputFieldIsNull)
}

func (tc *TestContext) iRunTheCLIWith(argLine string) error {
	var args []string
	for _, a := range bytes.Fields([]byte(argLine)) {
		args = append(args, string(a))
	}
	tc.run(args...)
	return nil
}

func (tc *TestContext) theCommandSucceeds() error {
	if tc.runErr != nil {
		return fmt.Errorf("expected success, got: %w\noutput:\n%s", tc.runErr, tc.stdout.String())
	}
	return nil
}

func (tc *TestContext) theCommandFails() error {
	if tc.runErr == nil {
		return fmt.Errorf("expected failure, command succeeded\noutput:\n%s", tc.stdout.String())
	}
	return nil
}

func (tc *TestContext) theOutputContains(want string) error {
	if !bytes.Contains(tc.stdout.Bytes(), []byte(want)) {
		return fmt.Errorf("output does not contain %q:\n%s", want, tc.stdout.String())
	}
	return nil
}

func (tc *TestContext) aTextFileContainingTheSampleReceipt() error {
	return tc.writeInput(testutil.SampleReceiptText())
}

func (tc *TestContext) aTextFileContaining(content string) error {
	return tc.writeInput(content)
}

func (tc *TestContext) writeInput(content string) error {
	tc.inputPath = filepath.Join(tc.workDir, "input.txt")
	return os.WriteFile(tc.inputPath, []byte(content), 0o600)
}

func (tc *TestContext) iRunTheParseCommandOnIt() error {
	if tc.inputPath == "" {
		return fmt.Errorf("no input file prepared")
	}
	tc.run("parse", tc.inputPath)
	tc.fields = nil
	if tc.runErr == nil {
		if err := json.Unmarshal(tc.stdout.Bytes(), &tc.fields); err != nil {
			return fmt.Errorf("parse output is not JSON: %w\noutput:\n%s", err, tc.stdout.String())
		}
	}
	return nil
}

func (tc *TestContext) theOutputFieldIs(key, want string) error {
	v, ok := tc.fields[key]
	if !ok {
		return fmt.Errorf("field %q missing from output", key)
	}
	got := fmt.Sprintf("%v", v)
	if got != want {
		return fmt.Errorf("field %q = %q, want %q", key, got, want)
	}
	return nil
}

func (tc *TestContext) theOutputFieldIsNull(key string) error {
	v, ok := tc.fields[key]
	if !ok {
		return fmt.Errorf("field %q missing from output", key)
	}
	if v != nil {
		return fmt.Errorf("field %q = %v, want null", key, v)
	}
	return nil
}
