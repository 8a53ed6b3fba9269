package commands

import (
	"fmt"

	"git.home.luguber.info/inful/leli/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Configuration file created: %s\n", root.Config)
	fmt.Fprintln(g.Out, "Next: leli extract --folder <docs> or leli translate --folder <docs>")
	return nil
}
