package cli

import (
	"fmt"

	"github.com/ksyq12/cpf/internal/service"
	"github.com/spf13/cobra"
)

var serviceShort = map[service.Action]string{
	service.Start:   "Start the %s service",
	service.Stop:    "Stop the %s service",
	service.Restart: "Restart the %s service",
	service.Reload:  "Reload the %s service",
	service.Status:  "Test the %s configuration",
}

// newServiceCommand builds the command for one lifecycle action. unit runs
// the shared setup and resolves the service to act on.
func newServiceCommand(action service.Action, label string, unit func() (service.Unit, error)) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: fmt.Sprintf(serviceShort[action], label),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := unit()
			if err != nil {
				return err
			}
			return service.New(deps.Executor).Do(action, u)
		},
	}
}

func init() {
	for _, action := range service.Actions() {
		nginxRootCmd.AddCommand(newServiceCommand(action, "nginx", nginxUnit))
		fpmRootCmd.AddCommand(newServiceCommand(action, "PHP-FPM", fpmUnit))
	}
}
