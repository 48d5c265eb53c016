package unreal

import (
	"fmt"
	"path/filepath"
	"strings"
)

var commandletFlags = []string{"-buildmachine", "-nopause", "-unattended", "-noscriptcheck"}

// EditorBinary is the editor executable, relative to the engine root.
func EditorBinary(hostPlatform string) (string, error) {
	switch hostPlatform {
	case "Win64":
		return "Engine/Binaries/Win64/UE4Editor.exe", nil
	case "Win32":
		return "Engine/Binaries/Win32/UE4Editor.exe", nil
	case "Mac":
		return "Engine/Binaries/Mac/UE4Editor", nil
	case "Linux":
		return "Engine/Binaries/Linux/UE4Editor", nil
	}
	return "", fmt.Errorf("%w host platform %q", ErrUnsupported, hostPlatform)
}

// CommandletArgs builds the command line running a commandlet. The
// -forcelogflush flag is left out, it slows cooking down.
func CommandletArgs(rootDir, game, hostPlatform, command string, args ...string) ([]string, error) {
	exe, err := EditorBinary(hostPlatform)
	if err != nil {
		return nil, err
	}
	cmdline := []string{filepath.ToSlash(filepath.Join(rootDir, exe)), game, "-run=" + command}
	cmdline = append(cmdline, args...)
	return append(cmdline, commandletFlags...), nil
}

// QuoteArgs joins args for a POSIX shell.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg != "" && !strings.ContainsAny(arg, " \t\n'\"\\$`*?[]{}()<>|&;#~") {
			quoted[i] = arg
			continue
		}
		quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}
