package azureaca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
)

const envOrderContext = `
resource:
  name: frontend_app
  id: /planes/radius/local/resourceGroups/dev/providers/Applications.Core/containers/frontend_app
  properties:
    containers:
      web:
        image: ghcr.io/example/web:1.0
        command: ["/bin/web"]
        args: ["--listen", ":8080"]
        env:
          ZETA: {value: last}
          ALPHA: {value: 8080}
          TOKEN:
            valueFrom:
              secretRef: {source: vault, key: token}
      migrate:
        image: ghcr.io/example/migrate:1.0
        initContainer: true
        env:
          MODE: {value: up}
        resources:
          limits: {cpu: 2, memoryInMib: 4096}
    connections:
      db: {source: db}
  connections:
    db:
      server: sql.internal
      status: {ready: true}
application:
  name: shop
`

func TestBuildContainersEnvOrder(t *testing.T) {
	rc := parseContext(t, envOrderContext)
	n := Normalize(rc, Parameters{EnvironmentID: testEnvironmentID})

	containers, initContainers, err := BuildContainers(n, ConnectionEnv(n.Resource))
	require.NoError(t, err)
	require.Len(t, containers, 1)
	require.Len(t, initContainers, 1)

	web := containers[0]
	assert.Equal(t, "web", *web.Name)
	assert.Equal(t, []string{
		"ZETA", "ALPHA",
		"CONNECTION_DB_SERVER",
		EnvApplicationName, EnvEnvironmentName, EnvResourceName,
	}, envNames(web.Env))

	app, _ := envValue(web.Env, EnvApplicationName)
	assert.Equal(t, "shop", app)
	env, _ := envValue(web.Env, EnvEnvironmentName)
	assert.Equal(t, "prod-env", env)
	res, _ := envValue(web.Env, EnvResourceName)
	assert.Equal(t, "frontend_app", res)

	require.Len(t, web.Command, 1)
	assert.Equal(t, "/bin/web", *web.Command[0])
	require.Len(t, web.Args, 2)
	assert.Nil(t, web.Probes)
}

func TestBuildContainersInitAsymmetry(t *testing.T) {
	rc := parseContext(t, envOrderContext)
	n := Normalize(rc, Parameters{EnvironmentID: testEnvironmentID})

	_, initContainers, err := BuildContainers(n, ConnectionEnv(n.Resource))
	require.NoError(t, err)

	migrate := initContainers[0]
	assert.Equal(t, "migrate", *migrate.Name)
	assert.Equal(t, []string{"MODE"}, envNames(migrate.Env))
	assert.Equal(t, DefaultCPU, *migrate.Resources.CPU)
	assert.Equal(t, DefaultMemory, *migrate.Resources.Memory)
	assert.Nil(t, migrate.Command)
}

func TestBuildContainersNoInitContainers(t *testing.T) {
	rc := parseContext(t, `
resource:
  name: solo
  properties:
    containers:
      main: {image: main:1}
`)
	containers, initContainers, err := BuildContainers(Normalize(rc, Parameters{}), nil)
	require.NoError(t, err)
	assert.Len(t, containers, 1)
	assert.Nil(t, initContainers)
}

func TestBuildContainersMissingImage(t *testing.T) {
	rc := parseContext(t, `
resource:
  name: broken
  properties:
    containers:
      main:
        ports:
          web: {containerPort: 80}
`)
	_, _, err := BuildContainers(Normalize(rc, Parameters{}), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingParameter)
	assert.Contains(t, err.Error(), `"main"`)
}

func TestBuildContainersRequiresWorkload(t *testing.T) {
	rc := parseContext(t, `
resource:
  name: only-init
  properties:
    containers:
      setup: {image: setup:1, initContainer: true}
`)
	_, _, err := BuildContainers(Normalize(rc, Parameters{}), nil)
	assert.ErrorIs(t, err, errors.ErrMissingParameter)
}
