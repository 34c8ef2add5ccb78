// Copyright 2025 The Choreoform Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/conf/loader"
	"github.com/choreoform/choreoform/conf/settings"
	"github.com/choreoform/choreoform/run/assistant"
	"github.com/choreoform/choreoform/run/editor"
	"github.com/choreoform/choreoform/run/server"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

type options struct {
	debug           bool
	dryRun          bool
	noEnvs          bool
	settingsPath    string
	overwriteValues []string
}

type foundationFactory func(debug, dryRun bool) (app.Foundation, error)

func defaultFoundation(debug, dryRun bool) (app.Foundation, error) {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, errors.Errorf("cannot initialize zap logger: %v", err)
	}
	return app.CreateFoundation(logger.Sugar(), afero.NewOsFs(), dryRun), nil
}

// deps is the wiring shared by all commands.
type deps struct {
	fnd       app.Foundation
	settings  *settings.Settings
	loader    loader.Loader
	templates templates.Maker
	editor    editor.Editor
	assistant assistant.Assistant
}

func (o *options) deps(factory foundationFactory) (*deps, error) {
	fnd, err := factory(o.debug, o.dryRun)
	if err != nil {
		return nil, err
	}
	l := loader.CreateLoader(fnd)
	s, err := settings.CreateMaker(fnd, l).Make(o.settingsPath, getOverwrites(o.overwriteValues, o.noEnvs, fnd), o.noEnvs)
	if err != nil {
		return nil, err
	}
	templatesMaker := templates.CreateMaker(fnd)
	return &deps{
		fnd:       fnd,
		settings:  s,
		loader:    l,
		templates: templatesMaker,
		editor:    editor.CreateEditor(fnd, templatesMaker),
		assistant: assistant.CreateMaker(fnd).Make(&s.AI),
	}, nil
}

// states resolves the editor states from snapshot files or, when none are given, from a
// template name.
func (d *deps) states(statePaths []string, name string) ([]*editor.State, error) {
	if len(statePaths) == 0 {
		if name == "" {
			name = string(templates.ServiceBuildFromSource)
		}
		state, err := d.editor.SelectTemplate(nil, templates.Name(name))
		if err != nil {
			return nil, err
		}
		return []*editor.State{state}, nil
	}
	if name != "" {
		return nil, errors.New("--state and --template are mutually exclusive")
	}
	snapshots, err := d.loader.LoadSnapshots(statePaths)
	if err != nil {
		return nil, err
	}
	states := make([]*editor.State, 0, len(snapshots))
	for _, snapshot := range snapshots {
		states = append(states, d.editor.FromSnapshot(snapshot.Config, snapshot.Descriptor))
	}
	return states, nil
}

func (d *deps) newSession(state *editor.State) *editor.Session {
	return editor.NewSession(d.fnd.GenerateUuid(), d.fnd, d.editor, d.assistant, d.assistant, state)
}

func (d *deps) session(statePath string, name string) (*editor.Session, error) {
	var statePaths []string
	if statePath != "" {
		statePaths = []string{statePath}
	}
	states, err := d.states(statePaths, name)
	if err != nil {
		return nil, err
	}
	return d.newSession(states[0]), nil
}

// snapshotName is the snapshot file name without its extension.
func snapshotName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func Run() {
	if err := newRootCommand(defaultFoundation).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(factory foundationFactory) *cobra.Command {
	opts := &options{}

	var rootCmd = &cobra.Command{
		Use:           "choreoform",
		Short:         "Generates OpenChoreo component configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "", false,
		"Provide a more detailed output by logging additional debugging information")
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "Activate dry-run mode without calling the AI service")
	rootCmd.PersistentFlags().BoolVar(&opts.noEnvs, "no-envs", false, "Prevent environment variables from superseding settings")
	rootCmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "Path to a settings file")
	rootCmd.PersistentFlags().StringSliceVarP(&opts.overwriteValues, "overwrite", "o", nil, "Overwrite settings values")

	rootCmd.AddCommand(
		newTemplatesCommand(opts, factory),
		newRenderCommand(opts, factory),
		newSuggestCommand(opts, factory),
		newValidateCommand(opts, factory),
		newServeCommand(opts, factory),
	)
	return rootCmd
}

func newTemplatesCommand(opts *options, factory foundationFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Lists the starter templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.deps(factory)
			if err != nil {
				return err
			}
			for _, name := range d.templates.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newRenderCommand(opts *options, factory foundationFactory) *cobra.Command {
	var statePaths []string
	var templateName, document, output string
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Renders a template or saved editor states",
		Long: "Renders the component configuration or the workload descriptor of a template or of saved " +
			"editor states. With several states the documents are printed in order, or written to " +
			"<output>/<state name>/<file> when an output directory is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.deps(factory)
			if err != nil {
				return err
			}
			states, err := d.states(statePaths, templateName)
			if err != nil {
				return err
			}
			for i, state := range states {
				artifact, err := d.newSession(state).Download(editor.Document(document))
				if err != nil {
					if len(statePaths) > 1 {
						return errors.Wrapf(err, "rendering %s", statePaths[i])
					}
					return err
				}
				if output == "" {
					if i > 0 {
						fmt.Fprint(cmd.OutOrStdout(), "---\n")
					}
					fmt.Fprint(cmd.OutOrStdout(), artifact.Content)
					continue
				}
				target := output
				if len(states) > 1 {
					target = filepath.Join(output, snapshotName(statePaths[i]), artifact.Filename)
				}
				if err = d.loader.Write(target, artifact.Content); err != nil {
					return err
				}
				d.fnd.Logger().Infof("Rendered %s to %s", artifact.Filename, target)
			}
			return nil
		},
	}
	renderCmd.Flags().StringArrayVarP(&statePaths, "state", "s", nil,
		"Path to a saved editor state (json, yaml or toml), may be repeated")
	renderCmd.Flags().StringVarP(&templateName, "template", "t", "", "Template to render")
	renderCmd.Flags().StringVarP(&document, "document", "d", string(editor.ConfigDocument), "Document to render: config or descriptor")
	renderCmd.Flags().StringVar(&output, "output", "",
		"Write the document to this file, or to this directory when several states are given")
	return renderCmd
}

func newSuggestCommand(opts *options, factory foundationFactory) *cobra.Command {
	var statePath, templateName string
	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "Asks the AI assistant for the next configuration lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.deps(factory)
			if err != nil {
				return err
			}
			session, err := d.session(statePath, templateName)
			if err != nil {
				return err
			}
			view, err := session.Suggest(cmd.Context())
			if err != nil {
				return err
			}
			if view.Notice != nil {
				fmt.Fprintln(cmd.OutOrStdout(), view.Notice.Message)
				return nil
			}
			for _, suggestion := range view.Suggestions {
				fmt.Fprintln(cmd.OutOrStdout(), suggestion)
			}
			return nil
		},
	}
	suggestCmd.Flags().StringVarP(&statePath, "state", "s", "", "Path to a saved editor state")
	suggestCmd.Flags().StringVarP(&templateName, "template", "t", "", "Template used as context")
	return suggestCmd
}

func newValidateCommand(opts *options, factory foundationFactory) *cobra.Command {
	var statePath, templateName string
	validateCmd := &cobra.Command{
		Use:   "validate <parameter>",
		Short: "Asks the AI assistant whether a parameter fits the configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.deps(factory)
			if err != nil {
				return err
			}
			session, err := d.session(statePath, templateName)
			if err != nil {
				return err
			}
			result, err := session.Validate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			switch {
			case result.Notice != nil:
				fmt.Fprintln(cmd.OutOrStdout(), result.Notice.Message)
			case result.IsValid:
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
			case result.Reason != "":
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s\n", result.Reason)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
			}
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&statePath, "state", "s", "", "Path to a saved editor state")
	validateCmd.Flags().StringVarP(&templateName, "template", "t", "", "Template used as context")
	return validateCmd
}

func newServeCommand(opts *options, factory foundationFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the editor HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.deps(factory)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := editor.CreateStore(d.fnd, d.editor, d.assistant, d.assistant)
			srv := server.CreateServer(d.fnd, d.settings.Server.Address, d.editor, d.templates, store)
			return srv.ListenAndServe(ctx)
		},
	}
}
