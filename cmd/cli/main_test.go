package main

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestReconcileCmdFlags(t *testing.T) {
	cmd := reconcileCmd()

	if cmd.Flags().Lookup("apply") == nil {
		t.Fatal("expected --apply flag")
	}
	if cmd.Flags().Lookup("workspace") == nil {
		t.Fatal("expected --workspace flag")
	}

	applied, err := cmd.Flags().GetBool("apply")
	if err != nil {
		t.Fatalf("failed to read apply flag: %v", err)
	}
	if applied {
		t.Fatal("expected apply to default to false")
	}
}

func TestGeneratePaymentsCmdRequiresWorkspace(t *testing.T) {
	cmd := generatePaymentsCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when workspace flag is missing")
	}
}
