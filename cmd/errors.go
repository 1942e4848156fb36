package cmd

import (
	stderrors "errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/logger"
)

// Exit codes.
const (
	exitError         = 1
	exitInvalidInput  = 2
	exitPlatformError = 3
)

func configError(err error) error {
	return errors.New(errors.CodeConfigurationInvalid, errors.DomainConfig, "load configuration", err)
}

func exitCode(err error) int {
	var respErr *azcore.ResponseError
	if stderrors.As(err, &respErr) {
		return exitPlatformError
	}
	switch errors.CodeOf(err) {
	case errors.CodeMissingParameter, errors.CodeInvalidParameter, errors.CodeValidationFailed, errors.CodeManifestInvalid, errors.CodeConfigurationInvalid:
		return exitInvalidInput
	}
	return exitError
}

// printErrorHelp logs err and, for failures with a known remedy, a hint.
func printErrorHelp(err error) {
	logger.Errorf("%v", err)

	var authErr *azidentity.AuthenticationFailedError
	var respErr *azcore.ResponseError
	switch {
	case stderrors.As(err, &authErr):
		logger.Error("Azure authentication failed. Run 'az login' or set AZURE_CLIENT_ID, AZURE_TENANT_ID and AZURE_CLIENT_SECRET.")
	case stderrors.As(err, &respErr) && (respErr.StatusCode == http.StatusUnauthorized || respErr.StatusCode == http.StatusForbidden):
		logger.Error("The credential has no access to the target resource group. Check its role assignments.")
	case stderrors.As(err, &respErr):
		logger.Errorf("Azure rejected the request (%d %s).", respErr.StatusCode, respErr.ErrorCode)
	case errors.CodeOf(err) == errors.CodeManifestInvalid:
		logger.Error("Run 'aca-recipe render' on the same input to inspect the manifest.")
	}
}
