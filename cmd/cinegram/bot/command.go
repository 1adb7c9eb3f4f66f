package bot

import (
	"github.com/spf13/cobra"

	"github.com/cinegram/cinegram/internal/business"
	"github.com/cinegram/cinegram/internal/cmdutils"
)

func Cmd() *cobra.Command {
	return cmdutils.CobraCommand(
		"bot",
		"Cinegram bot",
		"Cinegram bot long-polls Telegram and serves catalog searches and favorites.",
		business.BotMain,
	)
}
