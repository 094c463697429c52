/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// The templateinstance-migrator command updates TemplateInstances so that the
// object references recorded in their status point at the current
// group-version-kinds. It is the Go counterpart of
// `oc adm migrate template-instances`.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	templatev1 "github.com/openshift/api/template/v1"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/config"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/yaml"

	"github.com/alinabuzachis/templateinstance-migrator/pkg/migrate"
)

func main() {
	if err := newRootCommand().ExecuteContext(ctrl.SetupSignalHandler()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		namespace   string
		dryRun      bool
		output      string
		kubeContext string
	)

	zapOpts := zap.Options{}

	cmd := &cobra.Command{
		Use:   "templateinstance-migrator",
		Short: "Update TemplateInstances to point to the latest group-version-kinds",
		Long: `Update TemplateInstances to point to the latest group-version-kinds.

Lists every TemplateInstance (optionally scoped to one namespace), rewrites
any status object reference whose apiVersion is stale, and patches the status
subresource of each changed instance. Re-running is always safe: migrated
instances have no stale references left.`,
		Example: `  # Migrate TemplateInstances in namespace test
  templateinstance-migrator --namespace test

  # Report what would change across all namespaces, without patching
  templateinstance-migrator --dry-run -o yaml`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(&zapOpts)))

			cl, err := newClusterClient(kubeContext)
			if err != nil {
				return err
			}

			result, err := migrate.New(cl).Run(cmd.Context(), migrate.Options{
				Namespace: namespace,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, output)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace to migrate; all namespaces when unset")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report intended changes without patching anything")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "result encoding, one of json|yaml")
	cmd.Flags().StringVar(&kubeContext, "context", "", "kubeconfig context to use; current context when unset")

	gofs := flag.NewFlagSet("", flag.ContinueOnError)
	config.RegisterFlags(gofs)
	zapOpts.BindFlags(gofs)
	cmd.Flags().AddGoFlagSet(gofs)

	return cmd
}

// newClusterClient builds an authenticated cluster client with the template
// API group installed. A failure here means no work has started yet.
func newClusterClient(kubeContext string) (client.Client, error) {
	cfg, err := config.GetConfigWithContext(kubeContext)
	if err != nil {
		return nil, fmt.Errorf("cluster client unavailable: %w", err)
	}

	scheme := runtime.NewScheme()
	if err := templatev1.Install(scheme); err != nil {
		return nil, fmt.Errorf("installing template.openshift.io/v1 scheme: %w", err)
	}

	cl, err := client.New(cfg, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("cluster client unavailable: %w", err)
	}
	return cl, nil
}

// writeResult encodes the run outcome for the caller. The document mirrors
// the TemplateInstance schema, with a top-level changed flag.
func writeResult(w io.Writer, result *migrate.Result, output string) error {
	switch output {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q, expected json or yaml", output)
	}
}
