package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath  string
	dataDir     string
	forayCSV    string
	mycobankCSV string
}

const forayFixture = `id,genus_and_species_org_entry,genus_and_species_conf,genus_and_species_foray_name
F001,Amanita muscaria,Amanita muscaria,Amanita muscaria
F002,Boletus edulis,Boletus edulís,Boletus edulis
F003,Russula emetica,Xerocomus badius,Lactarius deliciosus
`

const mycobankFixture = `MycoBank #,Taxon name,Current name,Authors,Year,Hyperlink
MB100,Amanita muscaria,,"(L.) Lam.",1783,https://example.org/MB100
MB200,Boletus edulis,,Bull.,1782,https://example.org/MB200
MB300,Xerocomus badius,Imleria badia,"(Fr.) Vizzini",1832,https://example.org/MB300
`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	dataDir := filepath.Join(base, "data")
	logDir := filepath.Join(base, "logs")

	configPath := filepath.Join(homeDir, ".config", "foraymatch", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[logging]\nformat = \"json\"\nlevel = \"error\"\n",
		dataDir, logDir,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	forayCSV := filepath.Join(base, "foray.csv")
	if err := os.WriteFile(forayCSV, []byte(forayFixture), 0o644); err != nil {
		t.Fatalf("write foray fixture: %v", err)
	}
	mycobankCSV := filepath.Join(base, "mycobank.csv")
	if err := os.WriteFile(mycobankCSV, []byte(mycobankFixture), 0o644); err != nil {
		t.Fatalf("write mycobank fixture: %v", err)
	}

	return &cliTestEnv{
		configPath:  configPath,
		dataDir:     dataDir,
		forayCSV:    forayCSV,
		mycobankCSV: mycobankCSV,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
