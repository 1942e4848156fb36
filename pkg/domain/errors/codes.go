package errors

// Code represents an error code
type Code string

const (
	CodeUnknown              Code = "UNKNOWN"               // Unknown error occurred
	CodeInvalidParameter     Code = "INVALID_PARAMETER"     // Invalid parameter provided
	CodeMissingParameter     Code = "MISSING_PARAMETER"     // Required parameter missing
	CodeValidationFailed     Code = "VALIDATION_FAILED"     // Input could not be decoded or validated
	CodeIoError              Code = "IO_ERROR"              // Input/output operation failed
	CodeManifestInvalid      Code = "MANIFEST_INVALID"      // Rendered manifest failed pre-submit validation
	CodeDeploymentFailed     Code = "DEPLOYMENT_FAILED"     // Submission to the platform failed before a response
	CodeConfigurationInvalid Code = "CONFIGURATION_INVALID" // Configuration invalid
)

// Domains used by this module.
const (
	DomainRecipe  = "recipe"
	DomainRender  = "render"
	DomainDeploy  = "deploy"
	DomainConfig  = "config"
	DomainCommand = "cmd"
)
