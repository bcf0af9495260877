package main

import (
	"gaia/internal/errors"
	"gaia/internal/geolocation"
	"gaia/internal/registration"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var lat, lng, accuracy float64

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with the interactive wizard",
		Long: `Walks through the four registration steps, then offers to share a location.

There is no device location on the command line. Pass --lat and --lng to answer
the location prompt with a fixed position; without them "allow" registers
without a location, the same as "skip".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var provider geolocation.Provider = geolocation.UnavailableProvider{}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				provider = geolocation.StaticProvider{
					Position: geolocation.Position{Latitude: lat, Longitude: lng, Accuracy: accuracy},
				}
			}

			wf := registration.New(
				a.session,
				geolocation.NewAcquirer(provider, a.logger),
				registration.WithLogger(a.logger),
			)

			program := tea.NewProgram(
				newWizard(cmd.Context(), wf),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := program.Run(); err != nil {
				return errors.Wrap(err, "registration wizard failed")
			}

			if wf.State() != registration.StepSuccess {
				return errors.New("registration cancelled")
			}

			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude to share at the location prompt")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude to share at the location prompt")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 0, "accuracy of --lat/--lng in meters")

	return cmd
}
