package azureaca

import (
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"k8s.io/utils/ptr"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

const (
	DefaultMinReplicas       int32 = 1
	DefaultMaxReplicas       int32 = 10
	DefaultTargetUtilization int32 = 70

	utilizationMetricType = "Utilization"
)

// Scale builds the scale block. Rules stays nil when no metric translates;
// callers treat nil and empty the same.
func Scale(props recipe.Properties) *armappcontainers.Scale {
	minReplicas := ptr.Deref(props.Replicas, DefaultMinReplicas)
	maxReplicas := max(minReplicas, DefaultMaxReplicas)
	if props.AutoScaling != nil && props.AutoScaling.MaxReplicas != nil {
		maxReplicas = *props.AutoScaling.MaxReplicas
	}
	return &armappcontainers.Scale{
		MinReplicas: to.Ptr(minReplicas),
		MaxReplicas: to.Ptr(maxReplicas),
		Rules:       ScaleRules(props.AutoScaling),
	}
}

// ScaleRules emits one <kind>-scale-rule per cpu or memory metric, in
// metric order.
func ScaleRules(as *recipe.AutoScaling) []*armappcontainers.ScaleRule {
	if as == nil {
		return nil
	}
	var rules []*armappcontainers.ScaleRule
	for _, m := range as.Metrics {
		if !isSupportedMetric(m.Kind) {
			continue
		}
		target := DefaultTargetUtilization
		if m.Target != nil {
			target = ptr.Deref(m.Target.AverageUtilization, DefaultTargetUtilization)
		}
		rules = append(rules, &armappcontainers.ScaleRule{
			Name: to.Ptr(m.Kind + "-scale-rule"),
			Custom: &armappcontainers.CustomScaleRule{
				Type: to.Ptr(m.Kind),
				Metadata: map[string]*string{
					"type":  to.Ptr(utilizationMetricType),
					"value": to.Ptr(strconv.Itoa(int(target))),
				},
			},
		})
	}
	return rules
}
