package azureaca

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

const (
	DefaultProbePath   = "/"
	DefaultProbeScheme = "http"
)

// TranslateProbe returns nil when p is nil or carries no httpGet/tcpSocket
// action (exec probes are dropped).
func TranslateProbe(kind armappcontainers.Type, p *recipe.Probe) *armappcontainers.ContainerAppProbe {
	if p == nil {
		return nil
	}
	out := &armappcontainers.ContainerAppProbe{
		Type:                to.Ptr(kind),
		InitialDelaySeconds: p.InitialDelaySeconds,
		PeriodSeconds:       p.PeriodSeconds,
		TimeoutSeconds:      p.TimeoutSeconds,
		FailureThreshold:    p.FailureThreshold,
		SuccessThreshold:    p.SuccessThreshold,
	}
	switch {
	case p.HTTPGet != nil:
		path := p.HTTPGet.Path
		if path == "" {
			path = DefaultProbePath
		}
		scheme := p.HTTPGet.Scheme
		if scheme == "" {
			scheme = DefaultProbeScheme
		}
		out.HTTPGet = &armappcontainers.ContainerAppProbeHTTPGet{
			Port:   to.Ptr(p.HTTPGet.Port),
			Path:   to.Ptr(path),
			Scheme: to.Ptr(armappcontainers.Scheme(strings.ToUpper(scheme))),
		}
	case p.TCPSocket != nil:
		out.TCPSocket = &armappcontainers.ContainerAppProbeTCPSocket{
			Port: to.Ptr(p.TCPSocket.Port),
		}
	default:
		return nil
	}
	return out
}

// Probes translates liveness then readiness. The result is nil, not empty,
// when neither translates.
func Probes(c recipe.Container) []*armappcontainers.ContainerAppProbe {
	var probes []*armappcontainers.ContainerAppProbe
	if p := TranslateProbe(armappcontainers.TypeLiveness, c.LivenessProbe); p != nil {
		probes = append(probes, p)
	}
	if p := TranslateProbe(armappcontainers.TypeReadiness, c.ReadinessProbe); p != nil {
		probes = append(probes, p)
	}
	return probes
}
