package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeValidBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "SKILL.md",
		"---\nname: backend-patterns\ndescription: d\nversion: 1.0.0\n---\n# Skill\n")
	writeFile(t, dir, "README.md", "# Readme\n")
	return dir
}

func TestRunVersion(t *testing.T) {
	if err := Run(context.Background(), []string{"skillpack", "version"}); err != nil {
		t.Errorf("version command error = %v", err)
	}
}

func TestRunValidate(t *testing.T) {
	dir := writeValidBundle(t)

	if err := Run(context.Background(), []string{"skillpack", "--no-color", "validate", dir}); err != nil {
		t.Errorf("validate on valid bundle error = %v", err)
	}
}

func TestRunValidateFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "SKILL.md", "# no front matter\n")

	if err := Run(context.Background(), []string{"skillpack", "--no-color", "validate", dir}); err == nil {
		t.Error("validate on broken bundle succeeded, want error")
	}
}

func TestRunValidateJSON(t *testing.T) {
	dir := writeValidBundle(t)

	err := Run(context.Background(), []string{"skillpack", "--no-color", "validate", "--format", "json", dir})
	if err != nil {
		t.Errorf("validate --format json error = %v", err)
	}
}

func TestRunValidateUnknownFormat(t *testing.T) {
	dir := writeValidBundle(t)

	err := Run(context.Background(), []string{"skillpack", "validate", "--format", "xml", dir})
	if err == nil {
		t.Error("unknown format accepted")
	}
}

func TestRunInspectDirectory(t *testing.T) {
	dir := writeValidBundle(t)

	if err := Run(context.Background(), []string{"skillpack", "--no-color", "inspect", dir}); err != nil {
		t.Errorf("inspect error = %v", err)
	}
}

func TestRunPackAndUnpack(t *testing.T) {
	dir := writeValidBundle(t)
	out := filepath.Join(t.TempDir(), "bundle.tar.gz")

	err := Run(context.Background(), []string{"skillpack", "--no-color", "pack", "--output", out, dir})
	if err != nil {
		t.Fatalf("pack error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("archive not written: %v", err)
	}

	target := t.TempDir()
	err = Run(context.Background(), []string{"skillpack", "--no-color", "unpack", "--target", target, out})
	if err != nil {
		t.Fatalf("unpack error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "backend-patterns", "SKILL.md")); err != nil {
		t.Errorf("unpacked bundle missing: %v", err)
	}
}

func TestRunUnpackInfo(t *testing.T) {
	dir := writeValidBundle(t)
	out := filepath.Join(t.TempDir(), "bundle.tar.gz")

	if err := Run(context.Background(), []string{"skillpack", "pack", "--output", out, dir}); err != nil {
		t.Fatal(err)
	}
	if err := Run(context.Background(), []string{"skillpack", "--no-color", "unpack", "--info", out}); err != nil {
		t.Errorf("unpack --info error = %v", err)
	}
}

func TestRunNewStarter(t *testing.T) {
	base := t.TempDir()

	err := Run(context.Background(), []string{"skillpack", "--no-color", "new", "--starter", "--dir", base})
	if err != nil {
		t.Fatalf("new --starter error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "backend-patterns", "SKILL.md")); err != nil {
		t.Errorf("starter bundle missing: %v", err)
	}
}

func TestRunNewScaffold(t *testing.T) {
	base := t.TempDir()

	err := Run(context.Background(), []string{
		"skillpack", "--no-color", "new", "--dir", base,
		"--description", "Test bundle.", "incident-response",
	})
	if err != nil {
		t.Fatalf("new error = %v", err)
	}

	// The scaffold must validate cleanly.
	bundleDir := filepath.Join(base, "incident-response")
	if err := Run(context.Background(), []string{"skillpack", "--no-color", "validate", bundleDir}); err != nil {
		t.Errorf("scaffolded bundle fails validation: %v", err)
	}
}

func TestRunNewRequiresName(t *testing.T) {
	if err := Run(context.Background(), []string{"skillpack", "new"}); err == nil {
		t.Error("new without a name succeeded")
	}
}

func TestRunInstallFlow(t *testing.T) {
	dir := writeValidBundle(t)
	skills := t.TempDir()
	t.Setenv("SKILLPACK_CODEX_BUNDLE_PATHS", skills)

	err := Run(context.Background(), []string{
		"skillpack", "--no-color", "install", "--platform", "codex", "--scope", "user", dir,
	})
	if err != nil {
		t.Fatalf("install error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(skills, "backend-patterns", "SKILL.md")); err != nil {
		t.Fatalf("bundle not installed: %v", err)
	}

	err = Run(context.Background(), []string{
		"skillpack", "--no-color", "uninstall", "--platform", "codex", "backend-patterns",
	})
	if err != nil {
		t.Fatalf("uninstall error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(skills, "backend-patterns")); !os.IsNotExist(err) {
		t.Error("bundle still installed after uninstall")
	}
}

func TestRunInstallDryRun(t *testing.T) {
	dir := writeValidBundle(t)
	skills := t.TempDir()
	t.Setenv("SKILLPACK_CURSOR_BUNDLE_PATHS", skills)

	err := Run(context.Background(), []string{
		"skillpack", "install", "--platform", "cursor", "--scope", "user", "--dry-run", dir,
	})
	if err != nil {
		t.Fatalf("dry-run install error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(skills, "backend-patterns")); !os.IsNotExist(err) {
		t.Error("dry run touched the filesystem")
	}
}
