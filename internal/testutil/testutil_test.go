package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestWriteStubCreatesExecutableThatSucceeds(t *testing.T) {
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "ok-stub")
	WriteStub(t, dir, "ok-stub")

	info, err := os.Stat(stubPath)
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %#o", info.Mode().Perm())
	}

	cmd := exec.Command(stubPath)
	if err := cmd.Run(); err != nil {
		t.Fatalf("expected success exit, got %v", err)
	}
}

func TestWriteStubWithExitCreatesExecutableWithRequestedExitCode(t *testing.T) {
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "exit-stub")
	WriteStubWithExit(t, dir, "exit-stub", 7)

	cmd := exec.Command(stubPath)
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected non-zero exit status")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", exitErr.ExitCode())
	}
}

func TestFakeCabextractChainsExtractions(t *testing.T) {
	binDir := t.TempDir()
	work := t.TempDir()
	bin := WriteFakeCabextract(t, binDir)

	if calls := CabextractCalls(t, binDir); calls != nil {
		t.Fatalf("expected no calls before first run, got %v", calls)
	}

	archive := filepath.Join(work, "vc_redist.x64.exe")
	if err := os.WriteFile(archive, []byte("EXE"), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	if out, err := exec.Command(bin, "--directory", work, "--filter", "a10", archive).CombinedOutput(); err != nil {
		t.Fatalf("first extract: %v\n%s", err, out)
	}
	if out, err := exec.Command(bin, "--directory", work, "--filter", "ucrtbase.dll", filepath.Join(work, "a10")).CombinedOutput(); err != nil {
		t.Fatalf("second extract: %v\n%s", err, out)
	}

	got, err := os.ReadFile(filepath.Join(work, "ucrtbase.dll"))
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if string(got) != "EXE|a10|ucrtbase.dll" {
		t.Fatalf("unexpected content %q", got)
	}
	if calls := CabextractCalls(t, binDir); len(calls) != 2 {
		t.Fatalf("expected 2 recorded calls, got %v", calls)
	}
}

func TestFakeCabextractFailsOnMissingArchive(t *testing.T) {
	binDir := t.TempDir()
	bin := WriteFakeCabextract(t, binDir)

	if err := exec.Command(bin, "--directory", t.TempDir(), "--filter", "a10", "/nonexistent").Run(); err == nil {
		t.Fatal("expected failure for missing archive")
	}
}
