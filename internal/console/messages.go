package console

import "strings"

// Rule frames the output of every action.
var Rule = strings.Repeat("-", 68)

// PromptPrefix precedes every free-text prompt.
const PromptPrefix = ">> "

// Menu titles and labels.
const (
	titleMainMenu            = "[Main Menu]"
	titleBasicMenu           = "[K8S Basic Operations-Menu]"
	titleMultiplePodsMenu    = "[Create Multiple Pods-Menu]"
	messageMainMenu          = "Select from below options"
	labelBasicOperations     = "K8S Basic Operations"
	labelMultiplePodsMenu    = "<Create Multiple Pods> Demo"
	labelExit                = "Exit"
	labelGoBack              = "Go back"
	labelListPods            = "List all pods[namespace=%s]"
	labelDescribePod         = "Describe a specific pod"
	labelCreatePod           = "Create a pod['nginx' or 'redis']"
	labelScalePods           = "Scale pods['nginx' or 'redis']"
	labelExecCommand         = "Execute a command on a pod"
	labelDeployToEveryNode   = "Deploy a pod to every node"
	labelDeletePod           = "Delete a specific pod"
	labelMultiplePodsDemo    = "'Create Multiple Pods' Demo"
	allNamespacesScope       = "all"
	resourcePod              = "Pod"
	resourceDeployment       = "Deployment"
	promptNameFromList       = "Input %s Name from above list(Press Enter for back)"
	promptImage              = "Select Image 'nginx' or 'redis'[N or R](Press Enter for back)"
	promptName               = "Input %s Name(Press Enter for back)"
	promptScaleQuantity      = "Input scale quantity(Press Enter for back)"
	promptCommand            = "Input CMD(Optional)"
	msgNoPods                = "There is no Available Pods at this moment.."
	msgNoDeployments         = "There is no deployment at this moment.."
	msgInvalidPodName        = "Invalid pod name: %s"
	msgInvalidDeploymentName = "Invalid deployment name: %s"
	msgInvalidQuantity       = "Invalid scale quantity: %s"
	msgWrongInput            = "Wrong Input:%s"
	msgUnableToConnect       = "Unable to connect to k8 cluster"
	msgNotImplemented        = "Not Implemented.."
	msgPodCreated            = "Pod[type=Deployment] created. status=%s"
	msgPodDeployed           = "Pod[type=DaemonSet] deployed. status=%s"
	msgInputCommand          = "Input CMD:%s"
	msgDefaultCommand        = "Default CMD:%s"
	spinFetchingPods         = "Fetching pods..."
	spinFetchingDeployments  = "Fetching deployments..."
)

// Action names used for metrics, spans and logs.
const (
	actionListPods           = "list-pods"
	actionDescribePod        = "describe-pod"
	actionCreatePod          = "create-pod"
	actionScaleDeployment    = "scale-deployment"
	actionExecCommand        = "exec-command"
	actionDeployToEveryNode  = "deploy-daemonset"
	actionDeletePod          = "delete-pod"
	actionCreateMultiplePods = "create-multiple-pods"
)
