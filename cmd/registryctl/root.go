package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"myregistry/adapters/registryhttp"
	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/spf13/cobra"
)

const (
	envRegistryURL     = "REGISTRY_URL"
	defaultRegistryURL = "http://localhost:8080"
)

type rootOptions struct {
	registryURL string
	timeout     time.Duration
}

func (o *rootOptions) api() interfaces.RegistryAPI {
	return registryhttp.NewRegistryAPI(o.registryURL, &http.Client{Timeout: o.timeout})
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

// newRootCmd builds the registryctl command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "registryctl",
		Short:         "registryctl talks to a MyRegistry server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.registryURL, "registry", helpers.EnvString(envRegistryURL, defaultRegistryURL), "registry base URL (env "+envRegistryURL+")")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "request timeout")

	root.AddCommand(
		newServicesCmd(opts),
		newQueryCmd(opts),
		newRegisterCmd(opts),
		newRenewCmd(opts),
		newDeregisterCmd(opts),
	)
	return root
}

func newServicesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List services with live instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			apps, err := opts.api().Applications(ctx)
			if err != nil {
				return describe(err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SERVICE\tINSTANCES")
			for _, app := range apps {
				fmt.Fprintf(w, "%s\t%d\n", app.Name, len(app.Instances))
			}
			return w.Flush()
		},
	}
}

func newQueryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query SERVICE",
		Short: "List live instances of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			instances, err := opts.api().Query(ctx, args[0])
			if err != nil {
				return describe(err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INSTANCE\tADDRESS\tSTATUS")
			for _, inst := range instances {
				fmt.Fprintf(w, "%s\t%s\t%s\n", inst.InstanceID, inst.Address, inst.Status)
			}
			return w.Flush()
		},
	}
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var (
		status string
		lease  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "register SERVICE INSTANCE ADDRESS",
		Short: "Register or replace an instance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance := domain.Instance{
				ServiceName:   args[0],
				InstanceID:    args[1],
				Address:       args[2],
				Status:        domain.Status(strings.ToUpper(status)),
				LeaseDuration: lease,
			}
			if err := instance.Validate(); err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()
			if err := opts.api().Register(ctx, instance); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s/%s\n", instance.ServiceName, instance.InstanceID)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "UP|DOWN|STARTING (server default UP)")
	cmd.Flags().DurationVar(&lease, "lease", 0, "lease duration (server default when 0)")
	return cmd
}

func newRenewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "renew SERVICE INSTANCE",
		Short: "Renew the lease of an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			if err := opts.api().Renew(ctx, args[0], args[1]); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renewed %s/%s\n", args[0], args[1])
			return nil
		},
	}
}

func newDeregisterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deregister SERVICE INSTANCE",
		Short: "Remove an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			if err := opts.api().Deregister(ctx, args[0], args[1]); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deregistered %s/%s\n", args[0], args[1])
			return nil
		},
	}
}

// describe turns a registry error into a one-line message with its code.
func describe(err error) error {
	if myErr := service.ToMyError(err); myErr != nil {
		return fmt.Errorf("%s: %s", myErr.Code, myErr.Message)
	}
	return err
}
