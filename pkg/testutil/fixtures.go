package testutil

import (
	templatev1 "github.com/openshift/api/template/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// NewScheme returns a scheme with the template.openshift.io/v1 types
// installed, as the migrator's client requires.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	if err := templatev1.Install(scheme); err != nil {
		panic(err)
	}
	return scheme
}

// NewRESTMapper returns a RESTMapper that resolves TemplateInstance at
// template.openshift.io/v1, satisfying the migrator's resource location
// precondition.
func NewRESTMapper() meta.RESTMapper {
	mapper := meta.NewDefaultRESTMapper([]schema.GroupVersion{templatev1.GroupVersion})
	mapper.Add(templatev1.GroupVersion.WithKind("TemplateInstance"), meta.RESTScopeNamespace)
	return mapper
}

// NewEmptyRESTMapper returns a RESTMapper with no registered kinds, for
// exercising the resource-not-found path.
func NewEmptyRESTMapper() meta.RESTMapper {
	return meta.NewDefaultRESTMapper(nil)
}

// NewTemplateInstance builds a TemplateInstance whose status records one
// object reference per given ref, in order.
func NewTemplateInstance(name, namespace string, refs ...corev1.ObjectReference) *templatev1.TemplateInstance {
	ti := &templatev1.TemplateInstance{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}
	for _, ref := range refs {
		ti.Status.Objects = append(ti.Status.Objects, templatev1.TemplateInstanceObject{Ref: ref})
	}
	return ti
}

// Ref builds an object reference with the identity fields the migrator
// inspects.
func Ref(kind, apiVersion, name, namespace string) corev1.ObjectReference {
	return corev1.ObjectReference{
		Kind:       kind,
		APIVersion: apiVersion,
		Name:       name,
		Namespace:  namespace,
		UID:        "00000000-0000-0000-0000-000000000000",
	}
}
