package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gaia/internal/client"
	"gaia/internal/domain/generation"
	"gaia/internal/errors"
	"gaia/internal/geolocation"
	"gaia/internal/util"

	"github.com/spf13/cobra"
)

const envPassword = "GAIA_PASSWORD"

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv(envPassword)
			}
			if password == "" {
				return errors.New("password is required (--password or " + envPassword + ")")
			}

			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", titleStyle.Render(user.Email))

			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (env "+envPassword+")")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token := a.session.Token(); token != "" {
				if err := a.api.Logout(cmd.Context(), token); err != nil {
					a.logger.Warn("Server logout failed", slog.Any("error", err))
				}
			}
			if err := a.session.Logout(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")

			return nil
		},
	}
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}

			isNew, err := a.session.ConsumeNewUser()
			if err != nil {
				a.logger.Warn("Failed to read new user flag", slog.Any("error", err))
			}
			if isNew {
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Welcome to Gaia! Sign the Earth Charter to become a Planetarian."))
			}

			printUser(cmd.OutOrStdout(), user)

			return nil
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Check the stored token with the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := a.session.Token()
			if token == "" {
				return errors.New("no stored token")
			}

			info, err := a.api.VerifyToken(cmd.Context(), token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("user:"), info.UserID)
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("issued:"), info.IssuedAt.Local().Format(time.RFC1123))
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("expires in:"), util.FormatDuration(time.Until(info.ExpiresAt)))

			return nil
		},
	}
}

func newCharterCmd(a *app) *cobra.Command {
	charter := &cobra.Command{
		Use:   "charter",
		Short: "Earth Charter commands",
	}
	charter.AddCommand(&cobra.Command{
		Use:   "sign",
		Short: "Sign the Earth Charter and become a Planetarian",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			user, err := a.session.SignEarthCharter(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now a Planetarian\n", check(user.EarthCharterSigned), displayName(user))

			return nil
		},
	})

	return charter
}

func newLocationCmd(a *app) *cobra.Command {
	location := &cobra.Command{
		Use:   "location",
		Short: "Location commands",
	}

	var lat, lng, accuracy float64
	update := &cobra.Command{
		Use:   "update",
		Short: "Replace the stored location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			now := time.Now().UTC()
			loc := &client.Location{Latitude: lat, Longitude: lng, Timestamp: &now}
			if accuracy > 0 {
				loc.Accuracy = &accuracy
			}

			user, err := a.session.UpdateLocation(cmd.Context(), loc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Location set to %s\n", formatLocation(user.Location))

			return nil
		},
	}
	update.Flags().Float64Var(&lat, "lat", 0, "latitude")
	update.Flags().Float64Var(&lng, "lng", 0, "longitude")
	update.Flags().Float64Var(&accuracy, "accuracy", 0, "accuracy in meters")
	_ = update.MarkFlagRequired("lat")
	_ = update.MarkFlagRequired("lng")
	location.AddCommand(update)

	return location
}

func newCheckEmailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-email EMAIL",
		Short: "Check whether an email is still free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := a.api.CheckEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !exists {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is available\n", check(true), args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already registered\n", check(false), args[0])
			}

			return nil
		},
	}
}

func newCountriesCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Summarize the world countries dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if raw {
				data, err := a.api.Countries(cmd.Context())
				if err != nil {
					return err
				}
				_, err = out.Write(append(data, '\n'))

				return errors.WithStack(err)
			}

			stats, err := a.api.CountryStats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s %d\n", labelStyle.Render("countries:"), stats.TotalCountries)
			for kind, n := range stats.GeometryTypes {
				fmt.Fprintf(out, "  %-14s %d\n", kind, n)
			}
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("properties:"), strings.Join(stats.Properties, ", "))
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("modified:"), stats.LastModified.Local().Format(time.RFC1123))

			data, err := a.api.Countries(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("size:"), util.FormatBytes(int64(len(data))))

			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the GeoJSON document")

	return cmd
}

func printUser(w io.Writer, u *client.User) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(displayName(u)) + "\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("email:"), u.Email)
	fmt.Fprintf(&b, "%s %s, born %d\n", labelStyle.Render("gender:"), u.Gender, u.BirthYear)
	if u.GenerationalIdentity != "" {
		fmt.Fprintf(&b, "%s %s (%s)\n", labelStyle.Render("generation:"),
			generation.DisplayName(u.GenerationalIdentity), generation.Describe(u.GenerationalIdentity))
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("location:"), formatLocation(u.Location))
	fmt.Fprintf(&b, "%s %s Planetarian", labelStyle.Render("charter:"), check(u.EarthCharterSigned))

	fmt.Fprintln(w, boxStyle.Render(b.String()))
}

func displayName(u *client.User) string {
	if u.Name != "" {
		return u.Name
	}

	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func formatLocation(loc *client.Location) string {
	if loc == nil {
		return geolocation.FormatLocation(nil)
	}

	s := geolocation.FormatLocation(&geolocation.Sample{Latitude: loc.Latitude, Longitude: loc.Longitude})
	if loc.Accuracy != nil {
		s += fmt.Sprintf(" (±%.0fm, %s)", *loc.Accuracy, geolocation.AccuracyLevel(*loc.Accuracy))
	}

	return s
}
