package azureaca

import (
	"fmt"
	"slices"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

// Feature is an input construct the Container Apps projection cannot carry.
// Unsupported features never fail a render; they are left out of the
// manifest and listed here so the gap is documented in one place.
type Feature struct {
	ID     string
	Field  string
	Reason string
}

// Finding records one occurrence of an unsupported feature in an input.
type Finding struct {
	Feature Feature
	Path    string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Path, f.Feature.ID, f.Feature.Reason)
}

var (
	FeatureSecretEnv = Feature{
		ID:     "secret-env",
		Field:  "containers.*.env.*.valueFrom",
		Reason: "secret references are not mapped to Container Apps secrets",
	}
	FeatureExecProbe = Feature{
		ID:     "exec-probe",
		Field:  "containers.*.{livenessProbe,readinessProbe}.exec",
		Reason: "Container Apps probes support httpGet and tcpSocket only",
	}
	FeatureCustomScaleMetric = Feature{
		ID:     "custom-scale-metric",
		Field:  "autoScaling.metrics[kind=custom]",
		Reason: "only cpu and memory utilization rules are synthesized",
	}
	FeatureVolumes = Feature{
		ID:     "volumes",
		Field:  "containers.*.volumes",
		Reason: "volume mounts are not projected",
	}
	FeatureWorkingDir = Feature{
		ID:     "working-dir",
		Field:  "containers.*.workingDir",
		Reason: "Container Apps containers have no working directory setting",
	}
	FeatureRestartPolicy = Feature{
		ID:     "restart-policy",
		Field:  "restartPolicy",
		Reason: "Container Apps manages restarts itself",
	}
	FeatureTerminationGracePeriod = Feature{
		ID:     "termination-grace-period",
		Field:  "containers.*.terminationGracePeriodSeconds",
		Reason: "grace period is not projected",
	}
)

var unsupportedFeatures = []Feature{
	FeatureSecretEnv,
	FeatureExecProbe,
	FeatureCustomScaleMetric,
	FeatureVolumes,
	FeatureWorkingDir,
	FeatureRestartPolicy,
	FeatureTerminationGracePeriod,
}

// supportedMetricKinds is the allow-list of autoscaling metric kinds.
var supportedMetricKinds = []string{recipe.MetricCPU, recipe.MetricMemory}

// UnsupportedFeatures returns the registry in a stable order.
func UnsupportedFeatures() []Feature {
	return slices.Clone(unsupportedFeatures)
}

func isSupportedMetric(kind string) bool {
	return slices.Contains(supportedMetricKinds, kind)
}

// literalValue reports the literal value of an env var. Secret references
// and entries without a value are not literals.
func literalValue(e recipe.EnvVar) (string, bool) {
	if e.Value == nil {
		return "", false
	}
	return e.Value.String(), true
}

// DetectUnsupported walks rc and reports every unsupported construct in
// declaration order.
func DetectUnsupported(rc *recipe.Context) []Finding {
	if rc == nil {
		return nil
	}
	var findings []Finding
	add := func(f Feature, path string, args ...interface{}) {
		findings = append(findings, Finding{Feature: f, Path: fmt.Sprintf(path, args...)})
	}

	props := rc.Resource.Properties
	for name, c := range props.Containers.All() {
		for envName, e := range c.Env.All() {
			if _, ok := literalValue(e); !ok && e.ValueFrom != nil {
				add(FeatureSecretEnv, "containers.%s.env.%s", name, envName)
			}
		}
		if dropsProbe(c.LivenessProbe) {
			add(FeatureExecProbe, "containers.%s.livenessProbe", name)
		}
		if dropsProbe(c.ReadinessProbe) {
			add(FeatureExecProbe, "containers.%s.readinessProbe", name)
		}
		if c.Volumes.Len() > 0 {
			add(FeatureVolumes, "containers.%s.volumes", name)
		}
		if c.WorkingDir != nil {
			add(FeatureWorkingDir, "containers.%s.workingDir", name)
		}
		if c.TerminationGracePeriodSeconds != nil {
			add(FeatureTerminationGracePeriod, "containers.%s.terminationGracePeriodSeconds", name)
		}
	}
	if props.AutoScaling != nil {
		for i, m := range props.AutoScaling.Metrics {
			if !isSupportedMetric(m.Kind) {
				add(FeatureCustomScaleMetric, "autoScaling.metrics[%d]", i)
			}
		}
	}
	if props.RestartPolicy != nil {
		add(FeatureRestartPolicy, "restartPolicy")
	}
	return findings
}

// dropsProbe is true for a declared probe with no translatable action.
func dropsProbe(p *recipe.Probe) bool {
	return p != nil && p.HTTPGet == nil && p.TCPSocket == nil
}
