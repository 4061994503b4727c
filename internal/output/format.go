package output

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholders printed for values the cluster did not report.
const (
	NotAvailable = "NA"
	None         = "<None>"
)

// Truncation limits. A value longer than the limit keeps the first limit
// characters followed by TruncationSuffix.
const (
	MaxNamespaceLen      = 20
	MaxPodNameLen        = 41
	MaxDeploymentNameLen = 31

	TruncationSuffix = ".."
)

const (
	podRowFormat        = "  %-21s%-45s%-10s%-10s%-16s%-20s%-20s%s"
	deploymentRowFormat = "  %-35s%-12s%-12s%s"
)

// Section titles printed above the tables.
const (
	PodsTitle        = "<Available Pods>"
	DeploymentsTitle = "<Available Deployments>"
)

// Pod is the subset of pod state shown in the pod table. Optional values are
// pointers so that "not reported" can be told apart from zero.
type Pod struct {
	Namespace      string
	Name           string
	Phase          string
	Restarts       *int32
	PodIP          string
	NodeName       string
	NominatedNode  string
	ReadinessGates []string
}

// Deployment is the subset of deployment state shown in the deployment table.
type Deployment struct {
	Name              string
	ReadyReplicas     *int32
	Replicas          *int32
	UpdatedReplicas   *int32
	AvailableReplicas *int32
}

// Truncate shortens s to limit characters plus TruncationSuffix when it is
// longer than limit. Shorter or equal strings are returned unchanged.
func Truncate(s string, limit int) string {
	if limit < 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + TruncationSuffix
}

// PodHeader returns the column header line for the pod table.
func PodHeader() string {
	return fmt.Sprintf(podRowFormat,
		"NAMESPACE", "NAME", "STATUS", "RESTARTS", "IP", "NODE", "NOMINATED NODE", "READINESS GATES")
}

// PodRow renders a single pod as a table row.
func PodRow(p Pod) string {
	return fmt.Sprintf(podRowFormat,
		orNA(Truncate(p.Namespace, MaxNamespaceLen)),
		orNA(Truncate(p.Name, MaxPodNameLen)),
		orNA(p.Phase),
		countOrNA(p.Restarts),
		orNA(p.PodIP),
		orNA(p.NodeName),
		orNone(p.NominatedNode),
		orNone(strings.Join(p.ReadinessGates, ",")),
	)
}

// DeploymentHeader returns the column header line for the deployment table.
func DeploymentHeader() string {
	return fmt.Sprintf(deploymentRowFormat, "NAME", "READY", "UP-TO-DATE", "AVAILABLE")
}

// DeploymentRow renders a single deployment as a table row. READY is shown as
// ready/desired.
func DeploymentRow(d Deployment) string {
	ready := countOrNA(d.ReadyReplicas) + "/" + countOrNA(d.Replicas)
	return fmt.Sprintf(deploymentRowFormat,
		orNA(Truncate(d.Name, MaxDeploymentNameLen)),
		ready,
		countOrNA(d.UpdatedReplicas),
		countOrNA(d.AvailableReplicas),
	)
}

// PodTable renders the title, header and one row per pod.
func PodTable(pods []Pod) []string {
	lines := make([]string, 0, len(pods)+2)
	lines = append(lines, PodsTitle, PodHeader())
	for _, p := range pods {
		lines = append(lines, PodRow(p))
	}
	return lines
}

// DeploymentTable renders the title, header and one row per deployment.
func DeploymentTable(deployments []Deployment) []string {
	lines := make([]string, 0, len(deployments)+2)
	lines = append(lines, DeploymentsTitle, DeploymentHeader())
	for _, d := range deployments {
		lines = append(lines, DeploymentRow(d))
	}
	return lines
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return None
	}
	return s
}

func countOrNA(n *int32) string {
	if n == nil {
		return NotAvailable
	}
	return strconv.FormatInt(int64(*n), 10)
}
