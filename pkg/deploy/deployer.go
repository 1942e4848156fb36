// Package deploy submits rendered container apps to Azure Resource Manager.
package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"k8s.io/utils/ptr"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/logger"
)

const managedEnvironmentType = "Microsoft.App/managedEnvironments"

// DefaultPollFrequency is how often a create-or-update operation is polled.
const DefaultPollFrequency = 5 * time.Second

// EnvironmentInfo is what deployment needs to know about the managed
// environment.
type EnvironmentInfo struct {
	Location      string
	DefaultDomain string
}

// Deployer talks to the Container Apps control plane.
type Deployer interface {
	Environment(ctx context.Context, environmentID string) (*EnvironmentInfo, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, app armappcontainers.ContainerApp) (*armappcontainers.ContainerApp, error)
}

// ARMDeployer implements Deployer on the Azure SDK clients of one
// subscription.
type ARMDeployer struct {
	subscriptionID string
	factory        *armappcontainers.ClientFactory
	pollFrequency  time.Duration
}

// NewARMDeployer builds a deployer for subscriptionID. options may be nil.
func NewARMDeployer(subscriptionID string, cred azcore.TokenCredential, options *arm.ClientOptions) (*ARMDeployer, error) {
	if subscriptionID == "" {
		return nil, errors.Newf(errors.CodeMissingParameter, errors.DomainDeploy, "subscription id is required")
	}
	factory, err := armappcontainers.NewClientFactory(subscriptionID, cred, options)
	if err != nil {
		return nil, errors.New(errors.CodeConfigurationInvalid, errors.DomainDeploy, "create container apps client", err)
	}
	return &ARMDeployer{
		subscriptionID: subscriptionID,
		factory:        factory,
		pollFrequency:  DefaultPollFrequency,
	}, nil
}

// NewDefaultARMDeployer authenticates with azidentity's default credential
// chain (environment, workload identity, managed identity, Azure CLI).
func NewDefaultARMDeployer(subscriptionID string) (*ARMDeployer, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, errors.New(errors.CodeConfigurationInvalid, errors.DomainDeploy, "create Azure credential", err)
	}
	return NewARMDeployer(subscriptionID, cred, nil)
}

// Environment reads the managed environment's location and default domain.
func (d *ARMDeployer) Environment(ctx context.Context, environmentID string) (*EnvironmentInfo, error) {
	id, err := parseEnvironmentID(environmentID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(id.SubscriptionID, d.subscriptionID) {
		return nil, errors.Newf(errors.CodeInvalidParameter, errors.DomainDeploy,
			"environment %s is not in subscription %s", environmentID, d.subscriptionID)
	}

	logger.Debugf("reading managed environment %s", environmentID)
	resp, err := d.factory.NewManagedEnvironmentsClient().Get(ctx, id.ResourceGroupName, id.Name, nil)
	if err != nil {
		return nil, err
	}

	info := &EnvironmentInfo{Location: ptr.Deref(resp.Location, "")}
	if resp.Properties != nil {
		info.DefaultDomain = ptr.Deref(resp.Properties.DefaultDomain, "")
	}
	return info, nil
}

// CreateOrUpdate submits app and waits for the long-running operation to
// finish. Platform errors are returned as they come from the SDK.
func (d *ARMDeployer) CreateOrUpdate(ctx context.Context, resourceGroup, name string, app armappcontainers.ContainerApp) (*armappcontainers.ContainerApp, error) {
	logger.Infof("submitting container app %s to resource group %s", name, resourceGroup)
	poller, err := d.factory.NewContainerAppsClient().BeginCreateOrUpdate(ctx, resourceGroup, name, app, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: d.pollFrequency})
	if err != nil {
		return nil, err
	}
	logger.Infof("container app %s provisioned", name)
	return &resp.ContainerApp, nil
}

func parseEnvironmentID(environmentID string) (*arm.ResourceID, error) {
	if environmentID == "" {
		return nil, errors.Newf(errors.CodeMissingParameter, errors.DomainDeploy, "environment id is required")
	}
	id, err := arm.ParseResourceID(environmentID)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidParameter, errors.DomainDeploy,
			fmt.Sprintf("environment %q is not an ARM resource id", environmentID), err)
	}
	if !strings.EqualFold(id.ResourceType.String(), managedEnvironmentType) {
		return nil, errors.Newf(errors.CodeInvalidParameter, errors.DomainDeploy,
			"environment %q has type %s, want %s", environmentID, id.ResourceType, managedEnvironmentType)
	}
	return id, nil
}

// SubscriptionOf returns the subscription id embedded in an environment id.
func SubscriptionOf(environmentID string) (string, error) {
	id, err := parseEnvironmentID(environmentID)
	if err != nil {
		return "", err
	}
	return id.SubscriptionID, nil
}
