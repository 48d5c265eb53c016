package subcommands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nimp-build/nimp/utils"
	"github.com/nimp-build/nimp/utils/unreal"
)

const testConfig = `
game: ShooterGame
platform: pc+orbis
summary:
  hints:
    "Missing reference: {asset}":
      - ".*Can't find file '(?P<asset>[^']*)'."
`

const cookLog = "LogInit: Display: starting\r\n" +
	"[1/2] Loading ../Content/Maps/Arena...\n" +
	"LogLinker: Error: Can't find file 'Props/Crate'.\n" +
	"LogLinker: Warning: Texture too big\n" +
	"LogLinker: Error: Can't find file 'Props/Crate'.\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func useConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".nimp.yaml")
	writeFile(t, path, content)
	old := utils.Options.ConfigFile
	utils.Options.ConfigFile = path
	t.Cleanup(func() { utils.Options.ConfigFile = old })
	return dir
}

func TestSummarizeFiles(t *testing.T) {
	dir := useConfig(t, testConfig)
	writeFile(t, filepath.Join(dir, "Logs", "cook.log"), cookLog)
	writeFile(t, filepath.Join(dir, "Logs", "late.log"), "LogTemp: Warning: after reset\n")

	var out bytes.Buffer
	cmd := &SummarizeCMD{
		ReportDir: filepath.Join(dir, "reports"),
		Metrics:   filepath.Join(dir, "nimp.prom"),
		stdout:    &out,
	}
	err := cmd.Execute(context.Background(), []string{filepath.Join(dir, "Logs", "*.log")})
	if !errors.Is(err, errLogHasErrors) {
		t.Fatalf("err = %v", err)
	}

	want := "Maps/Arena :\n" +
		" * ERROR   : Missing reference: Props/Crate\n" +
		" * WARNING : LogLinker: Warning: Texture too big\n" +
		"\n" +
		"Unknown location :\n" +
		" * WARNING : LogTemp: Warning: after reset\n" +
		"\n"
	if out.String() != want {
		t.Fatalf("report mismatch\ngot:\n%s\nwant:\n%s", out.String(), want)
	}

	reports, err := os.ReadDir(filepath.Join(dir, "reports"))
	if err != nil || len(reports) != 1 {
		t.Fatalf("reports = %v, %v", reports, err)
	}
	if name := reports[0].Name(); !strings.HasPrefix(name, "ShooterGame_") {
		t.Fatalf("report name %q", name)
	}
	report, err := os.ReadFile(filepath.Join(dir, "reports", reports[0].Name()))
	if err != nil || string(report) != want {
		t.Fatalf("report file %q, %v", report, err)
	}

	metrics, err := os.ReadFile(filepath.Join(dir, "nimp.prom"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(metrics), `nimp_summary_lines_total{game="ShooterGame"} 6`) {
		t.Fatalf("metrics:\n%s", metrics)
	}
}

func TestSummarizeStdin(t *testing.T) {
	dir := useConfig(t, "game: ShooterGame\n")
	var out bytes.Buffer
	cmd := &SummarizeCMD{
		ReportDir: "reports",
		stdin:     strings.NewReader("LogTemp: Warning: only a warning\n"),
		stdout:    &out,
	}
	if err := cmd.Execute(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Unknown location :\n * WARNING : LogTemp: Warning: only a warning\n\n" {
		t.Fatalf("got %q", out.String())
	}
	reports, err := os.ReadDir(filepath.Join(dir, "reports"))
	if err != nil || len(reports) != 1 {
		t.Fatalf("report not written next to the config: %v, %v", reports, err)
	}
}

func TestSummarizeOutputFile(t *testing.T) {
	dir := useConfig(t, "")
	output := filepath.Join(dir, "summary.txt")
	cmd := &SummarizeCMD{Output: output, stdin: strings.NewReader("clean log\n")}
	if err := cmd.Execute(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil || len(data) != 0 {
		t.Fatalf("clean log report = %q, %v", data, err)
	}
}

func TestSummarizeMissingFile(t *testing.T) {
	dir := useConfig(t, "")
	cmd := &SummarizeCMD{stdout: &bytes.Buffer{}}
	if err := cmd.Execute(context.Background(), []string{filepath.Join(dir, "nope.log")}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestSummarizeFollowNeedsOneFile(t *testing.T) {
	useConfig(t, "")
	cmd := &SummarizeCMD{Follow: true, stdout: &bytes.Buffer{}}
	if err := cmd.Execute(context.Background(), []string{"a.log", "b.log"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSummarizeFollowInterrupted(t *testing.T) {
	dir := useConfig(t, "")
	path := filepath.Join(dir, "cook.log")
	writeFile(t, path, "LogTemp: Error: broken\nLogTemp: Warning: half")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	var out bytes.Buffer
	cmd := &SummarizeCMD{Follow: true, stdout: &out}
	if err := cmd.Execute(ctx, []string{path}); !errors.Is(err, errLogHasErrors) {
		t.Fatalf("err = %v", err)
	}
	want := "Unknown location :\n" +
		" * ERROR   : LogTemp: Error: broken\n" +
		" * WARNING : LogTemp: Warning: half\n\n"
	if out.String() != want {
		t.Fatalf("got %q", out.String())
	}
}

func TestReportPath(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	got, err := reportPath("out", "Shooter/Game", now)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(filepath.Base(got), "/") || !strings.HasSuffix(got, "_2024-03-01_12-30-00_summary.txt") {
		t.Fatalf("got %q", got)
	}
	if got, _ := reportPath("out", "", now); filepath.Base(got) != "nimp_2024-03-01_12-30-00_summary.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestPlatforms(t *testing.T) {
	useConfig(t, "platform: pc\n")
	var out bytes.Buffer
	cmd := &PlatformsCMD{Platform: "orbis+linux", Configuration: "devel+shipping", stdout: &out}
	if err := cmd.Execute(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"ps4", "PS4", "linux", "LinuxNoEditor", "devel+shipping (Development+Shipping)"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if strings.Contains(got, "win64") {
		t.Errorf("config platform not overridden:\n%s", got)
	}
}

func TestPlatformsList(t *testing.T) {
	var out bytes.Buffer
	cmd := &PlatformsCMD{List: true, stdout: &out}
	if err := cmd.Execute(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(unreal.PlatformAliases()) {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(out.String(), "orbis\tps4\n") {
		t.Fatalf("orbis missing:\n%s", out.String())
	}
}

func TestProject(t *testing.T) {
	dir := useConfig(t, "game: ShooterGame\n")
	writeFile(t, filepath.Join(dir, unreal.ProjectMarker), "")
	writeFile(t, filepath.Join(dir, "Engine", "Build", "Build.version"),
		`{"MajorVersion": 4, "MinorVersion": 21, "PatchVersion": 0}`)

	var out bytes.Buffer
	if err := (&ProjectCMD{stdout: &out}).Execute(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"engine:   4.21.0", "vs:       15", "game:     ShooterGame", "os:       " + unreal.HostDescription()} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in\n%s", want, out.String())
		}
	}
}

func TestCommandlet(t *testing.T) {
	useConfig(t, "unreal:\n  root_dir: /ue\n")
	host, err := unreal.HostPlatform()
	if err != nil {
		t.Skip(err)
	}

	if err := (&CommandletCMD{stdout: &bytes.Buffer{}}).Execute(context.Background(), []string{"cook"}); err == nil {
		t.Fatal("expected a missing game error")
	}
	if err := (&CommandletCMD{Game: "ShooterGame"}).Execute(context.Background(), nil); err == nil {
		t.Fatal("expected a missing commandlet error")
	}

	var out bytes.Buffer
	cmd := &CommandletCMD{Game: "ShooterGame", stdout: &out}
	if err := cmd.Execute(context.Background(), []string{"cook", "-map=Arena"}); err != nil {
		t.Fatal(err)
	}
	exe, _ := unreal.EditorBinary(host)
	want := "/ue/" + exe + " ShooterGame -run=cook -map=Arena -buildmachine -nopause -unattended -noscriptcheck\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}
