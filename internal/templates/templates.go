package templates

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

//go:embed manifests/*.yaml
var manifests embed.FS

// Embedded manifest file names.
const (
	NginxDeploymentFile = "nginx-deployment.yaml"
	RedisDeploymentFile = "redis-deployment.yaml"
	NodeDaemonSetFile   = "node-daemonset.yaml"
)

const (
	kindDeployment = "Deployment"
	kindDaemonSet  = "DaemonSet"
)

// Image selects one of the Deployment templates.
type Image string

const (
	ImageNginx Image = "nginx"
	ImageRedis Image = "redis"
)

var (
	// ErrKindMismatch is returned when a manifest declares a different kind
	// than the one it is loaded as.
	ErrKindMismatch = errors.New("template kind mismatch")

	// ErrUnknownImage is returned for an Image without a template.
	ErrUnknownImage = errors.New("unknown image")
)

// Paths overrides embedded manifests with files on disk. Empty fields keep
// the embedded manifest.
type Paths struct {
	Nginx string `yaml:"nginx"`
	Redis string `yaml:"redis"`
	Node  string `yaml:"node"`
}

// Store hands out fresh workload objects decoded from the manifests.
type Store struct {
	paths    Paths
	readFile func(name string) ([]byte, error)
}

// NewStore returns a Store reading overrides from paths.
func NewStore(paths Paths) *Store {
	return &Store{paths: paths, readFile: os.ReadFile}
}

// Deployment returns the Deployment template for image. A non-empty name
// replaces the template's metadata.name.
func (s *Store) Deployment(image Image, name string) (*appsv1.Deployment, error) {
	var override, file string
	switch image {
	case ImageNginx:
		override, file = s.paths.Nginx, NginxDeploymentFile
	case ImageRedis:
		override, file = s.paths.Redis, RedisDeploymentFile
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownImage, image)
	}

	data, source, err := s.load(override, file)
	if err != nil {
		return nil, err
	}

	deployment := &appsv1.Deployment{}
	if err := decode(data, source, kindDeployment, deployment, &deployment.TypeMeta); err != nil {
		return nil, err
	}
	rename(&deployment.ObjectMeta, name)
	return deployment, nil
}

// DaemonSet returns the node DaemonSet template. A non-empty name replaces
// the template's metadata.name.
func (s *Store) DaemonSet(name string) (*appsv1.DaemonSet, error) {
	data, source, err := s.load(s.paths.Node, NodeDaemonSetFile)
	if err != nil {
		return nil, err
	}

	daemonSet := &appsv1.DaemonSet{}
	if err := decode(data, source, kindDaemonSet, daemonSet, &daemonSet.TypeMeta); err != nil {
		return nil, err
	}
	rename(&daemonSet.ObjectMeta, name)
	return daemonSet, nil
}

func (s *Store) load(override, file string) ([]byte, string, error) {
	if override != "" {
		data, err := s.readFile(override)
		if err != nil {
			return nil, override, fmt.Errorf("failed to read template %s: %w", override, err)
		}
		return data, override, nil
	}

	data, err := manifests.ReadFile(path.Join("manifests", file))
	if err != nil {
		return nil, file, fmt.Errorf("failed to read embedded template %s: %w", file, err)
	}
	return data, file, nil
}

func decode(data []byte, source, kind string, obj any, typeMeta *metav1.TypeMeta) error {
	if err := yaml.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("failed to decode template %s: %w", source, err)
	}
	if typeMeta.Kind != kind {
		return fmt.Errorf("%w: %s declares kind %q, expected %q", ErrKindMismatch, source, typeMeta.Kind, kind)
	}
	return nil
}

func rename(meta *metav1.ObjectMeta, name string) {
	if name != "" {
		meta.Name = name
	}
}
