package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

//writeRun lays out a dump and a matching configuration in a temp dir and
//returns the config path and the canonical output path.
func writeRun(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dump := filepath.Join(dir, "villin.crd")
	var b strings.Builder
	for frame := 1; frame <= 3; frame++ {
		for _, name := range []string{"N", "CA", "C"} {
			fmt.Fprintf(&b, "%s A 1 %d 1.%d00 2.%d00 3.%d00\n", name, frame, frame, frame, frame)
		}
	}
	require.NoError(t, os.WriteFile(dump, []byte(b.String()), 0644))
	conf := filepath.Join(dir, "run.yaml")
	content := fmt.Sprintf("system: villin\nlength: 10ns\ntraj: %s\noutdir: %s\nstart: 1\nend: 3\nquiet: true\n", dump, dir)
	require.NoError(t, os.WriteFile(conf, []byte(content), 0644))
	return conf, filepath.Join(dir, "villin_10ns_final_formatted.dat")
}

func TestRunCommand(t *testing.T) {
	conf, out := writeRun(t)
	app := newCLIApp()
	require.NoError(t, app.Run([]string{"bbtab", "run", "-c", conf}))
	table, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(table), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "Frame A_1_C-X A_1_C-Y A_1_C-Z A_1_CA-X A_1_CA-Y A_1_CA-Z A_1_N-X A_1_N-Y A_1_N-Z", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "Frame1 "))
}

func TestRunCommandEndOverride(t *testing.T) {
	conf, out := writeRun(t)
	app := newCLIApp()
	require.NoError(t, app.Run([]string{"bbtab", "run", "-c", conf, "--end", "2"}))
	table, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSuffix(string(table), "\n"), "\n"), 3)
}

func TestRunCommandFailure(t *testing.T) {
	conf, out := writeRun(t)
	app := newCLIApp()
	//frame 4 was never extracted
	err := app.Run([]string{"bbtab", "run", "-c", conf, "--end", "4"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "frame 4")
	_, serr := os.Stat(out)
	require.True(t, os.IsNotExist(serr))
}

func TestHeaderCommand(t *testing.T) {
	conf, out := writeRun(t)
	app := newCLIApp()
	var buf bytes.Buffer
	app.Writer = &buf
	require.NoError(t, app.Run([]string{"bbtab", "header", "-c", conf}))
	require.Equal(t, "Frame A_1_C-X A_1_C-Y A_1_C-Z A_1_CA-X A_1_CA-Y A_1_CA-Z A_1_N-X A_1_N-Y A_1_N-Z\n", buf.String())
	//header never builds the table
	_, serr := os.Stat(out)
	require.True(t, os.IsNotExist(serr))
}
