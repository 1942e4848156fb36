// Package recipe holds the input and output envelopes exchanged with the
// provisioning system that invokes the Container Apps recipe.
package recipe

// Context is the raw invocation envelope.
type Context struct {
	Resource    Resource     `yaml:"resource"`
	Application *Application `yaml:"application,omitempty"`
}

type Application struct {
	Name string `yaml:"name"`
}

// Resource is the abstract container workload being provisioned.
type Resource struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// ID is the resource's stable identity in the provisioning system.
	ID string `yaml:"id"`

	Properties Properties `yaml:"properties"`

	// Connections holds the resolved property bag of each connected resource,
	// keyed by connection name.
	Connections Map[Map[Scalar]] `yaml:"connections"`
}

type Properties struct {
	Application string `yaml:"application"`
	Environment string `yaml:"environment"`

	Containers  Map[Container]            `yaml:"containers"`
	Connections Map[ConnectionDefinition] `yaml:"connections"`

	// Replicas is the workload minimum; defaults to 1.
	Replicas    *int32       `yaml:"replicas"`
	AutoScaling *AutoScaling `yaml:"autoScaling"`
	Extensions  *Extensions  `yaml:"extensions"`

	// Accepted, never projected.
	RestartPolicy *string `yaml:"restartPolicy"`
}

// Container is one entry of the containers bag.
type Container struct {
	Image     string      `yaml:"image"`
	Command   []string    `yaml:"command"`
	Args      []string    `yaml:"args"`
	Env       Map[EnvVar] `yaml:"env"`
	Ports     Map[Port]   `yaml:"ports"`
	Resources *Resources  `yaml:"resources"`

	LivenessProbe  *Probe `yaml:"livenessProbe"`
	ReadinessProbe *Probe `yaml:"readinessProbe"`

	InitContainer bool `yaml:"initContainer"`

	// Accepted, never projected.
	Volumes                       Map[Scalar] `yaml:"volumes"`
	WorkingDir                    *string     `yaml:"workingDir"`
	TerminationGracePeriodSeconds *int64      `yaml:"terminationGracePeriodSeconds"`
}

// EnvVar is either a literal value or a reference to an external secret.
type EnvVar struct {
	Value     *Scalar       `yaml:"value"`
	ValueFrom *EnvVarSource `yaml:"valueFrom"`
}

type EnvVarSource struct {
	SecretRef *SecretReference `yaml:"secretRef"`
}

type SecretReference struct {
	Source string `yaml:"source"`
	Key    string `yaml:"key"`
}

type Port struct {
	ContainerPort int32  `yaml:"containerPort"`
	Protocol      string `yaml:"protocol"`
	Scheme        string `yaml:"scheme"`
}

type Resources struct {
	Requests *ResourceList `yaml:"requests"`
	Limits   *ResourceList `yaml:"limits"`
}

type ResourceList struct {
	// CPU is a decimal number of cores such as "0.5".
	CPU         *Scalar `yaml:"cpu"`
	MemoryInMib *int64  `yaml:"memoryInMib"`
}

// Probe is a liveness or readiness check. At most one of HTTPGet, TCPSocket
// and Exec is expected; HTTPGet wins over TCPSocket when both are set.
type Probe struct {
	HTTPGet   *HTTPGetAction   `yaml:"httpGet"`
	TCPSocket *TCPSocketAction `yaml:"tcpSocket"`
	Exec      *ExecAction      `yaml:"exec"`

	InitialDelaySeconds *int32 `yaml:"initialDelaySeconds"`
	PeriodSeconds       *int32 `yaml:"periodSeconds"`
	TimeoutSeconds      *int32 `yaml:"timeoutSeconds"`
	FailureThreshold    *int32 `yaml:"failureThreshold"`
	SuccessThreshold    *int32 `yaml:"successThreshold"`
}

type HTTPGetAction struct {
	Port   int32  `yaml:"port"`
	Path   string `yaml:"path"`
	Scheme string `yaml:"scheme"`
}

type TCPSocketAction struct {
	Port int32 `yaml:"port"`
}

type ExecAction struct {
	Command []string `yaml:"command"`
}

type ConnectionDefinition struct {
	Source                string `yaml:"source"`
	DisableDefaultEnvVars *bool  `yaml:"disableDefaultEnvVars"`
}

type AutoScaling struct {
	MaxReplicas *int32   `yaml:"maxReplicas"`
	Metrics     []Metric `yaml:"metrics"`
}

// Metric kinds.
const (
	MetricCPU    = "cpu"
	MetricMemory = "memory"
	MetricCustom = "custom"
)

type Metric struct {
	Kind   string        `yaml:"kind"`
	Target *MetricTarget `yaml:"target"`
}

type MetricTarget struct {
	AverageUtilization *int32 `yaml:"averageUtilization"`
}

type Extensions struct {
	DaprSidecar *DaprSidecar `yaml:"daprSidecar"`
}

type DaprSidecar struct {
	AppID   string `yaml:"appId"`
	AppPort *int32 `yaml:"appPort"`
}

// Output is returned to the provisioning system after an invocation.
type Output struct {
	Resources []string     `json:"resources"`
	Values    OutputValues `json:"values"`
}

type OutputValues struct {
	FQDN string `json:"fqdn"`
	URL  string `json:"url"`
}
