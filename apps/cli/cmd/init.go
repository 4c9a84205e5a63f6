package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a wave project",
	Long: `Initialize a wave project in the current directory.

This creates:
  - .wave/example.yaml   - Example collection
  - .wave.config.json    - Configuration file

Examples:
  wave init
  wave init --force`,
	Args: usageArgs(cobra.NoArgs),
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleCollection = `variables:
  base_url: https://httpbin.org
requests:
  - name: get-ip
    method: GET
    url: ${base_url}/ip
    headers:
      Accept: application/json
  - name: create-user
    method: POST
    url: ${base_url}/post
    headers:
      Authorization: Bearer ${env:API_TOKEN}
    body:
      json:
        name: alice
        age: 30
  - name: login
    method: POST
    url: ${base_url}/post
    body:
      form:
        username: alice
        password: ${env:PASSWORD}
`

func initCommand(cmd *cobra.Command, args []string) error {
	dir := dirFlag
	if dir == "" {
		dir = collection.DefaultDir
	}

	exampleFile := filepath.Join(dir, "example.yaml")
	configFile := config.ConfigFilenames[0]

	if !forceInit {
		for _, f := range []string{exampleFile, configFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	if _, err := collection.Parse("example", []byte(exampleCollection)); err != nil {
		return fmt.Errorf("example collection: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := os.WriteFile(exampleFile, []byte(exampleCollection), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	configContent := map[string]any{
		"dir":             dir,
		"timeout":         "30s",
		"followRedirects": true,
		"maxRedirects":    10,
		"validateSSL":     true,
		"headers": map[string]string{
			"User-Agent": "wave/" + version,
		},
	}
	configJSON, err := json.MarshalIndent(configContent, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, append(configJSON, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nwave project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'wave -c example get-ip' to send the first request.\n")

	return nil
}
