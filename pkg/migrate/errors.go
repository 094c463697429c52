package migrate

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ResourceNotFoundError reports that the templateinstances resource type
// could not be resolved at the expected group/version. The run fails before
// any instance is inspected.
type ResourceNotFoundError struct {
	GroupKind schema.GroupKind
	Version   string
	Err       error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("the %s resource is not available at version %s: %v", e.GroupKind, e.Version, e.Err)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// RetrievalError reports that listing TemplateInstances failed. The run is
// aborted; no partial working set is processed.
type RetrievalError struct {
	// Namespace is the namespace the list was scoped to, or empty for a
	// cluster-wide list.
	Namespace string
	Err       error
}

func (e *RetrievalError) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("failed to retrieve TemplateInstances in all namespaces: %v", e.Err)
	}
	return fmt.Sprintf("failed to retrieve TemplateInstances in namespace %q: %v", e.Namespace, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// StatusReason extracts the HTTP status code and machine-readable reason from
// the underlying API error, when the cause carries one. It returns zero values
// for causes that are not API status errors (for example transport failures).
func (e *RetrievalError) StatusReason() (int32, metav1.StatusReason) {
	var st apierrors.APIStatus
	if errors.As(e.Err, &st) {
		return st.Status().Code, st.Status().Reason
	}
	return 0, ""
}

// PatchError reports that the status patch for a single instance failed.
// The first failed patch aborts the whole run; re-running is always safe
// because already-patched instances are no longer stale.
type PatchError struct {
	Name      string
	Namespace string
	Err       error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("failed to migrate TemplateInstance %s/%s: %v", e.Namespace, e.Name, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }
