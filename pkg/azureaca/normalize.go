package azureaca

import (
	"hash/fnv"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/rand"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

// MaxNameLength is the Container Apps limit on app names.
const MaxNameLength = 32

// Normalized is the defaulted view of a recipe context that every later
// stage reads from.
type Normalized struct {
	// ResourceName is the name exactly as given.
	ResourceName string
	// Name is ResourceName lower-cased with underscores turned into hyphens.
	Name string
	// Suffix is derived from the resource id and keeps PlatformName unique
	// across resources that share a name.
	Suffix       string
	PlatformName string

	ApplicationName  string
	EnvironmentLabel string

	Resource recipe.Resource
}

// Normalize never fails; absent input degrades to empty values.
func Normalize(rc *recipe.Context, params Parameters) Normalized {
	n := Normalized{}
	if rc == nil {
		rc = &recipe.Context{}
	}
	n.Resource = rc.Resource
	n.ResourceName = rc.Resource.Name
	n.Name = NormalizeName(rc.Resource.Name)
	n.Suffix = UniqueSuffix(rc.Resource.ID)
	n.PlatformName = PlatformName(n.Name, n.Suffix)
	if rc.Application != nil {
		n.ApplicationName = rc.Application.Name
	}
	n.EnvironmentLabel = LastSegment(params.EnvironmentID)
	return n
}

func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// UniqueSuffix hashes id the same way Kubernetes derives pod-template
// hashes: FNV-32a rendered through rand.SafeEncodeString, so the result
// contains no vowels and is stable across invocations.
func UniqueSuffix(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return rand.SafeEncodeString(strconv.FormatUint(uint64(h.Sum32()), 10))
}

// PlatformName joins name and suffix, truncating name so the result fits
// MaxNameLength.
func PlatformName(name, suffix string) string {
	budget := MaxNameLength - 1 - len(suffix)
	if len(name) > budget {
		name = name[:budget]
	}
	name = strings.TrimRight(name, "-")
	if name == "" {
		name = "app"
	}
	return name + "-" + suffix
}

// LastSegment returns the final "/"-separated segment of id, or "".
func LastSegment(id string) string {
	id = strings.TrimRight(id, "/")
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
