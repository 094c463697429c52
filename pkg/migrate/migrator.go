package migrate

import (
	"context"
	"time"

	templatev1 "github.com/openshift/api/template/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/alinabuzachis/templateinstance-migrator/pkg/monitoring"
)

// templateInstanceGK is the group/kind the migrator operates on. Resolution
// of this kind at templatev1.GroupVersion is a precondition of every run.
var templateInstanceGK = schema.GroupKind{
	Group: templatev1.GroupName,
	Kind:  "TemplateInstance",
}

// Options scopes a migration run.
type Options struct {
	// Namespace restricts the run to one namespace. Empty means all
	// namespaces.
	Namespace string

	// DryRun computes and reports rewrites without persisting anything. No
	// patch call is made while set.
	DryRun bool
}

// Result is the aggregate outcome of a run.
type Result struct {
	// Changed is true iff at least one instance had a stale reference.
	Changed bool `json:"changed"`

	// Instances holds every migrated instance body, in list order. For
	// persisted patches this is the server-returned body (with its updated
	// resourceVersion); in dry-run it is the locally rewritten body.
	Instances []templatev1.TemplateInstance `json:"result"`
}

// Migrator performs one-shot TemplateInstance reference migrations against a
// single cluster.
type Migrator struct {
	client client.Client
}

// New returns a Migrator backed by the given cluster client. The client's
// scheme must have templatev1 installed.
func New(c client.Client) *Migrator {
	return &Migrator{client: c}
}

// Run lists TemplateInstances, rewrites stale status references, and patches
// the status subresource of every mutated instance. Instances are processed
// sequentially in list order; the first failed patch aborts the run.
//
// The returned Result is valid only when err is nil.
func (m *Migrator) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := log.FromContext(ctx).WithValues("namespace", opts.Namespace, "dryRun", opts.DryRun)

	ctx, span := monitoring.StartRunSpan(ctx, opts.Namespace, opts.DryRun)
	defer span.End()

	if _, err := m.client.RESTMapper().RESTMapping(templateInstanceGK, templatev1.GroupVersion.Version); err != nil {
		nfErr := &ResourceNotFoundError{
			GroupKind: templateInstanceGK,
			Version:   templatev1.GroupVersion.Version,
			Err:       err,
		}
		monitoring.RecordSpanError(span, nfErr)
		return nil, nfErr
	}

	instances, err := m.list(ctx, opts.Namespace)
	if err != nil {
		monitoring.RecordSpanError(span, err)
		return nil, err
	}
	logger.V(1).Info("listed TemplateInstances", "count", len(instances))

	result := &Result{}
	for i := range instances {
		ti := &instances[i]
		monitoring.RecordInstanceScanned()

		for _, obj := range ti.Status.Objects {
			if _, stale := needsRewrite(obj.Ref); stale {
				monitoring.RecordReferenceRewritten(obj.Ref.Kind)
			}
		}

		if !TransformInstance(ti) {
			continue
		}
		result.Changed = true

		if opts.DryRun {
			logger.Info("would migrate TemplateInstance", "name", ti.Name, "instanceNamespace", ti.Namespace)
			result.Instances = append(result.Instances, *ti.DeepCopy())
			monitoring.RecordInstanceMigrated()
			continue
		}

		if err := m.client.Status().Patch(ctx, ti, client.Merge); err != nil {
			patchErr := &PatchError{Name: ti.Name, Namespace: ti.Namespace, Err: err}
			monitoring.RecordPatchFailure()
			monitoring.RecordSpanError(span, patchErr)
			logger.Error(patchErr, "aborting run on failed status patch")
			return nil, patchErr
		}
		logger.Info("migrated TemplateInstance", "name", ti.Name, "instanceNamespace", ti.Namespace)
		result.Instances = append(result.Instances, *ti.DeepCopy())
		monitoring.RecordInstanceMigrated()
	}

	monitoring.RecordRun(opts.DryRun, result.Changed, time.Since(start))
	logger.V(1).Info("run complete", "changed", result.Changed, "migrated", len(result.Instances), "duration", time.Since(start).String())
	return result, nil
}

// list fetches the working set, scoped to namespace when non-empty.
func (m *Migrator) list(ctx context.Context, namespace string) ([]templatev1.TemplateInstance, error) {
	list := &templatev1.TemplateInstanceList{}
	var listOpts []client.ListOption
	if namespace != "" {
		listOpts = append(listOpts, client.InNamespace(namespace))
	}
	if err := m.client.List(ctx, list, listOpts...); err != nil {
		return nil, &RetrievalError{Namespace: namespace, Err: err}
	}
	return list.Items, nil
}
