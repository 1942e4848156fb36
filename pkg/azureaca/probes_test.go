package azureaca

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

func TestTranslateProbeHTTPDefaults(t *testing.T) {
	got := TranslateProbe(armappcontainers.TypeLiveness, &recipe.Probe{
		HTTPGet:       &recipe.HTTPGetAction{Port: 8080},
		PeriodSeconds: ptr.To[int32](15),
	})
	require.NotNil(t, got)
	assert.Equal(t, armappcontainers.TypeLiveness, *got.Type)
	assert.Equal(t, int32(8080), *got.HTTPGet.Port)
	assert.Equal(t, "/", *got.HTTPGet.Path)
	assert.Equal(t, armappcontainers.SchemeHTTP, *got.HTTPGet.Scheme)
	assert.Equal(t, int32(15), *got.PeriodSeconds)
	assert.Nil(t, got.InitialDelaySeconds)
	assert.Nil(t, got.TCPSocket)
}

func TestTranslateProbeHTTPS(t *testing.T) {
	got := TranslateProbe(armappcontainers.TypeReadiness, &recipe.Probe{
		HTTPGet: &recipe.HTTPGetAction{Port: 8443, Path: "/ready", Scheme: "https"},
	})
	require.NotNil(t, got)
	assert.Equal(t, armappcontainers.SchemeHTTPS, *got.HTTPGet.Scheme)
	assert.Equal(t, "/ready", *got.HTTPGet.Path)
}

func TestTranslateProbeTCP(t *testing.T) {
	got := TranslateProbe(armappcontainers.TypeReadiness, &recipe.Probe{
		TCPSocket: &recipe.TCPSocketAction{Port: 6379},
	})
	require.NotNil(t, got)
	assert.Nil(t, got.HTTPGet)
	assert.Equal(t, int32(6379), *got.TCPSocket.Port)
}

func TestTranslateProbeExecDropped(t *testing.T) {
	assert.Nil(t, TranslateProbe(armappcontainers.TypeLiveness, &recipe.Probe{
		Exec: &recipe.ExecAction{Command: []string{"cat", "/tmp/healthy"}},
	}))
	assert.Nil(t, TranslateProbe(armappcontainers.TypeLiveness, nil))
}

func TestProbes(t *testing.T) {
	c := recipe.Container{
		LivenessProbe:  &recipe.Probe{Exec: &recipe.ExecAction{Command: []string{"true"}}},
		ReadinessProbe: &recipe.Probe{TCPSocket: &recipe.TCPSocketAction{Port: 80}},
	}
	probes := Probes(c)
	require.Len(t, probes, 1)
	assert.Equal(t, armappcontainers.TypeReadiness, *probes[0].Type)

	assert.Nil(t, Probes(recipe.Container{}))
}
