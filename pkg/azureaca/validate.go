package azureaca

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/utils/ptr"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
)

// Severity of a validation error.
const (
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// ValidationResult collects the findings of Validate.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

// ValidationError makes a manifest unsubmittable.
type ValidationError struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Rule     string `json:"rule,omitempty"`
}

// ValidationWarning is reported but does not block deployment.
type ValidationWarning struct {
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

func (r *ValidationResult) addError(rule, format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
		Rule:     rule,
	})
}

func (r *ValidationResult) addWarning(rule, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, ValidationWarning{
		Message: fmt.Sprintf(format, args...),
		Rule:    rule,
	})
}

// Err returns a MANIFEST_INVALID error listing every rule that failed, or nil.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Rule, e.Message))
	}
	return errors.Newf(errors.CodeManifestInvalid, errors.DomainRender, "manifest failed validation: %s", strings.Join(msgs, "; "))
}

// Validate checks a container app body against the platform's structural
// rules before it is submitted.
func Validate(app *armappcontainers.ContainerApp) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}
	if app == nil {
		result.addError("containerapp-required", "no container app to validate")
		return result
	}

	validateName(ptr.Deref(app.Name, ""), result)

	props := app.Properties
	if props == nil {
		result.addError("containerapp-properties-required", "container app missing properties")
		return result
	}
	if ptr.Deref(props.EnvironmentID, "") == "" {
		result.addError("containerapp-environment-required", "container app missing managedEnvironmentId")
	}

	if props.Template == nil {
		result.addError("containerapp-template-required", "container app missing template section")
	} else {
		validateTemplate(props.Template, result)
	}

	if props.Configuration != nil {
		validateConfiguration(props.Configuration, result)
	}
	return result
}

func validateName(name string, result *ValidationResult) {
	if name == "" {
		result.addError("containerapp-name-required", "container app missing name")
		return
	}
	if len(name) > MaxNameLength {
		result.addError("containerapp-name-length", "name %q is longer than %d characters", name, MaxNameLength)
	}
	for _, msg := range validation.IsDNS1123Label(name) {
		result.addError("containerapp-name-format", "name %q: %s", name, msg)
	}
	if c := name[0]; c < 'a' || c > 'z' {
		result.addError("containerapp-name-format", "name %q must start with a letter", name)
	}
}

func validateTemplate(tmpl *armappcontainers.Template, result *ValidationResult) {
	if len(tmpl.Containers) == 0 {
		result.addError("containerapp-containers-required", "container app template has no containers defined")
	}
	for i, c := range tmpl.Containers {
		if c == nil {
			continue
		}
		validateContainer(i, c.Name, c.Image, c.Resources, result)
	}
	for i, c := range tmpl.InitContainers {
		if c == nil {
			continue
		}
		validateContainer(i, c.Name, c.Image, c.Resources, result)
	}
	if tmpl.Scale != nil {
		validateScale(tmpl.Scale, result)
	}
}

func validateContainer(index int, name, image *string, resources *armappcontainers.ContainerResources, result *ValidationResult) {
	label := ptr.Deref(name, "")
	if label == "" {
		label = fmt.Sprintf("%d", index)
		result.addError("container-name-required", "container %d missing name", index)
	}
	if ptr.Deref(image, "") == "" {
		result.addError("container-image-required", "container %s missing image", label)
	}
	if resources == nil {
		return
	}

	if resources.CPU != nil {
		if cpu := *resources.CPU; cpu <= 0 || cpu > 4 {
			result.addWarning("container-cpu-range", "container %s CPU value %g may be outside typical range (0.25-4.0)", label, cpu)
		}
	}
	if resources.Memory != nil {
		memory := *resources.Memory
		switch {
		case !strings.HasSuffix(memory, "Gi") && !strings.HasSuffix(memory, "Mi"):
			result.addError("container-memory-format", "container %s memory format invalid (should end with Gi or Mi)", label)
		case strings.TrimSuffix(strings.TrimSuffix(memory, "Gi"), "Mi") == "0":
			result.addWarning("container-memory-zero", "container %s memory rounds down to %s", label, memory)
		}
	}
}

func validateScale(scale *armappcontainers.Scale, result *ValidationResult) {
	minReplicas := ptr.Deref(scale.MinReplicas, 0)
	maxReplicas := ptr.Deref(scale.MaxReplicas, 0)

	if minReplicas < 0 {
		result.addError("scale-min-replicas-range", "minReplicas cannot be negative")
	}
	if scale.MaxReplicas != nil {
		if maxReplicas < 1 {
			result.addError("scale-max-replicas-range", "maxReplicas must be at least 1")
		}
		if maxReplicas > 300 {
			result.addWarning("scale-max-replicas-limit", "maxReplicas exceeds typical limit of 300")
		}
	}
	if minReplicas > maxReplicas && maxReplicas > 0 {
		result.addError("scale-replicas-consistency", "minReplicas cannot be greater than maxReplicas")
	}
}

func validateConfiguration(config *armappcontainers.Configuration, result *ValidationResult) {
	if ingress := config.Ingress; ingress != nil && ingress.TargetPort != nil {
		if port := *ingress.TargetPort; port <= 0 || port > 65535 {
			result.addError("ingress-port-range", "invalid target port: %d", port)
		}
	}
	if dapr := config.Dapr; dapr != nil && ptr.Deref(dapr.Enabled, false) {
		if ptr.Deref(dapr.AppID, "") == "" {
			result.addWarning("dapr-appid-recommended", "Dapr enabled but no appId specified")
		}
	}
}
