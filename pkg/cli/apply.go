package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/context"
	"gopkg.in/yaml.v3"
)

// applyExecution reads a yaml role definitions file and upserts each role on
// the pki engine.
func (p *palisade) applyExecution(ctx context.Context) error {

	if p.config.File == "" {
		return fmt.Errorf("no file specified for role application")
	}

	// check for yaml file extension
	if !strings.HasSuffix(p.config.File, ".yml") && !strings.HasSuffix(p.config.File, ".yaml") {
		return fmt.Errorf("role definitions file must have a .yaml or .yml extension")
	}

	// read in yaml file
	yml, err := os.Open(p.config.File)
	if err != nil {
		return fmt.Errorf("error reading in yaml file: %v", err)
	}
	defer yml.Close()

	// decode to RoleFile struct
	var roleFile RoleFile
	decoder := yaml.NewDecoder(yml)
	if err := decoder.Decode(&roleFile); err != nil {
		return fmt.Errorf("error decoding yaml file: %v", err)
	}

	if len(roleFile.Roles) == 0 {
		return fmt.Errorf("no roles defined in %s", p.config.File)
	}

	for _, def := range roleFile.Roles {
		if def.Name == "" {
			return fmt.Errorf("role definition missing its name in %s", p.config.File)
		}

		if err := p.client.CreateOrUpdateRole(ctx, def.Name, def.Options()); err != nil {
			return fmt.Errorf("failed to upsert role %s: %v", def.Name, err)
		}
	}

	p.logger.Info(fmt.Sprintf("applied %d role(s) from %s", len(roleFile.Roles), p.config.File))
	return nil
}
