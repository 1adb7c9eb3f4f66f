package migrate

import (
	"github.com/spf13/cobra"

	"github.com/cinegram/cinegram/internal/business"
	"github.com/cinegram/cinegram/internal/cmdutils"
)

func Cmd() *cobra.Command {
	return cmdutils.CobraCommand(
		"migrate",
		"Cinegram migrations",
		"",
		business.MigrateMain,
	)
}
